// Package k8s queries live cluster API servers to complete the fields the
// cloud provider APIs do not expose.
package k8s

import (
	"context"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/aantony2/nautilus/internal/models"
)

// Enrichment holds everything one live-cluster pass produces.
type Enrichment struct {
	NodesTotal  int
	NodesReady  int
	PodsTotal   int
	PodsRunning int
	Services    int
	Deployments int
	Ingresses   int
	Namespaces  []models.Namespace
	Metadata    models.ClusterMetadata
}

// Enricher runs the live-cluster queries. Each outbound call gets its own
// timeout so one unresponsive API server cannot stall the whole cycle.
type Enricher struct {
	Timeout time.Duration
	now     func() time.Time
}

// NewEnricher returns an enricher with the given per-call timeout (0 means no
// timeout beyond the run context).
func NewEnricher(timeout time.Duration) *Enricher {
	return &Enricher{Timeout: timeout, now: time.Now}
}

// Enrich connects with the short-lived credentials in cfg and collects live
// object counts and namespace detail. Any failure abandons enrichment for
// this cluster only.
func (e *Enricher) Enrich(ctx context.Context, clusterID string, cfg *rest.Config) (*Enrichment, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no connection credentials for cluster %s", clusterID)
	}
	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}
	return e.enrich(ctx, clusterID, clientset)
}

func (e *Enricher) enrich(ctx context.Context, clusterID string, clientset kubernetes.Interface) (*Enrichment, error) {
	now := e.now()
	out := &Enrichment{}

	nsList, err := e.listNamespaces(ctx, clientset)
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	podList, err := e.listPods(ctx, clientset)
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}
	out.PodsTotal = len(podList.Items)
	podsPerNamespace := make(map[string]int)
	for _, pod := range podList.Items {
		podsPerNamespace[pod.Namespace]++
		if pod.Status.Phase == corev1.PodRunning {
			out.PodsRunning++
		}
	}

	nodeList, err := e.listNodes(ctx, clientset)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	out.NodesTotal = len(nodeList.Items)
	for _, node := range nodeList.Items {
		status := "NotReady"
		if nodeReady(node) {
			out.NodesReady++
			status = "Ready"
		}
		out.Metadata.Nodes = append(out.Metadata.Nodes, models.NodeSummary{
			Name:    node.Name,
			Status:  status,
			Version: node.Status.NodeInfo.KubeletVersion,
		})
	}

	svcList, err := e.listServices(ctx, clientset)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	out.Services = len(svcList.Items)

	out.Deployments, err = e.countDeployments(ctx, clientset)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	out.Ingresses, err = e.countIngresses(ctx, clientset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingresses: %w", err)
	}

	quotaNamespaces, err := e.listQuotaNamespaces(ctx, clientset)
	if err != nil {
		return nil, fmt.Errorf("failed to list resource quotas: %w", err)
	}

	for _, ns := range nsList.Items {
		phase := string(ns.Status.Phase)
		if phase == "" {
			phase = models.NamespaceActive
		}
		out.Namespaces = append(out.Namespaces, models.Namespace{
			ClusterID:     clusterID,
			Name:          ns.Name,
			Status:        phase,
			Phase:         phase,
			Age:           FormatAge(ns.CreationTimestamp.Time, now),
			Labels:        toJSONMap(ns.Labels),
			Annotations:   toJSONMap(ns.Annotations),
			PodCount:      podsPerNamespace[ns.Name],
			ResourceQuota: quotaNamespaces[ns.Name],
			CreatedAt:     ns.CreationTimestamp.Time,
		})
	}

	events, err := e.listEvents(ctx, clientset)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	out.Metadata.Events = events

	return out, nil
}

func (e *Enricher) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.Timeout)
}

func (e *Enricher) listNamespaces(ctx context.Context, cs kubernetes.Interface) (*corev1.NamespaceList, error) {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	return cs.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
}

func (e *Enricher) listPods(ctx context.Context, cs kubernetes.Interface) (*corev1.PodList, error) {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	return cs.CoreV1().Pods(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
}

func (e *Enricher) listNodes(ctx context.Context, cs kubernetes.Interface) (*corev1.NodeList, error) {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	return cs.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
}

func (e *Enricher) listServices(ctx context.Context, cs kubernetes.Interface) (*corev1.ServiceList, error) {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	return cs.CoreV1().Services(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
}

func (e *Enricher) countDeployments(ctx context.Context, cs kubernetes.Interface) (int, error) {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	list, err := cs.AppsV1().Deployments(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return 0, err
	}
	return len(list.Items), nil
}

func (e *Enricher) countIngresses(ctx context.Context, cs kubernetes.Interface) (int, error) {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	list, err := cs.NetworkingV1().Ingresses(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return 0, err
	}
	return len(list.Items), nil
}

// listQuotaNamespaces returns the set of namespaces with at least one
// ResourceQuota.
func (e *Enricher) listQuotaNamespaces(ctx context.Context, cs kubernetes.Interface) (map[string]bool, error) {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	quotas, err := cs.CoreV1().ResourceQuotas(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(quotas.Items))
	for _, q := range quotas.Items {
		out[q.Namespace] = true
	}
	return out, nil
}

// listEvents keeps the 10 most recent events for the metadata blob.
func (e *Enricher) listEvents(ctx context.Context, cs kubernetes.Interface) ([]models.ClusterEvent, error) {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	events, err := cs.CoreV1().Events(metav1.NamespaceAll).List(ctx, metav1.ListOptions{Limit: 10})
	if err != nil {
		return nil, err
	}
	out := make([]models.ClusterEvent, 0, len(events.Items))
	for _, ev := range events.Items {
		ts := ev.LastTimestamp.Time
		if ts.IsZero() {
			ts = ev.EventTime.Time
		}
		out = append(out, models.ClusterEvent{
			Type:      ev.Type,
			Reason:    ev.Reason,
			Object:    ev.InvolvedObject.Kind + "/" + ev.InvolvedObject.Name,
			Message:   ev.Message,
			Timestamp: ts,
		})
	}
	return out, nil
}

func nodeReady(node corev1.Node) bool {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady && cond.Status == corev1.ConditionTrue {
			return true
		}
	}
	return false
}

func toJSONMap(m map[string]string) models.JSONMap {
	out := models.JSONMap{}
	for k, v := range m {
		out[k] = v
	}
	return out
}
