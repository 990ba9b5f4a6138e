package k8s

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/aantony2/nautilus/internal/models"
)

func testEnricher(now time.Time) *Enricher {
	e := NewEnricher(0)
	e.now = func() time.Time { return now }
	return e
}

func namespaceObj(name string, phase corev1.NamespacePhase, created time.Time, labels map[string]string) *corev1.Namespace {
	return &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			Labels:            labels,
			CreationTimestamp: metav1.NewTime(created),
		},
		Status: corev1.NamespaceStatus{Phase: phase},
	}
}

func podObj(name, namespace string, phase corev1.PodPhase) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Status:     corev1.PodStatus{Phase: phase},
	}
}

func nodeObj(name string, ready corev1.ConditionStatus) *corev1.Node {
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{{Type: corev1.NodeReady, Status: ready}},
			NodeInfo:   corev1.NodeSystemInfo{KubeletVersion: "v1.29.4"},
		},
	}
}

func TestEnrich_CountsAndNamespaces(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	objects := []runtime.Object{
		namespaceObj("default", corev1.NamespaceActive, now.AddDate(0, 0, -400), map[string]string{"env": "prod"}),
		namespaceObj("backend", corev1.NamespaceActive, now.AddDate(0, 0, -5), nil),
		namespaceObj("winding-down", corev1.NamespaceTerminating, now.Add(-3*time.Hour), nil),
		podObj("web-1", "default", corev1.PodRunning),
		podObj("web-2", "default", corev1.PodRunning),
		podObj("job-1", "backend", corev1.PodSucceeded),
		nodeObj("node-a", corev1.ConditionTrue),
		nodeObj("node-b", corev1.ConditionFalse),
		&corev1.Service{ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"}},
		&appsv1.Deployment{ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"}},
		&corev1.ResourceQuota{ObjectMeta: metav1.ObjectMeta{Name: "quota", Namespace: "default"}},
	}
	clientset := fake.NewSimpleClientset(objects...)

	out, err := testEnricher(now).enrich(context.Background(), "gke-test", clientset)
	require.NoError(t, err)

	assert.Equal(t, 3, out.PodsTotal)
	assert.Equal(t, 2, out.PodsRunning)
	assert.Equal(t, 2, out.NodesTotal)
	assert.Equal(t, 1, out.NodesReady)
	assert.Equal(t, 1, out.Services)
	assert.Equal(t, 1, out.Deployments)
	assert.Equal(t, 0, out.Ingresses)
	require.Len(t, out.Namespaces, 3)

	byName := map[string]models.Namespace{}
	for _, ns := range out.Namespaces {
		byName[ns.Name] = ns
	}

	def := byName["default"]
	assert.Equal(t, "gke-test", def.ClusterID)
	assert.Equal(t, models.NamespaceActive, def.Phase)
	assert.Equal(t, "1y", def.Age)
	assert.Equal(t, 2, def.PodCount)
	assert.True(t, def.ResourceQuota)
	assert.Equal(t, "prod", def.Labels["env"])

	backend := byName["backend"]
	assert.Equal(t, "5d", backend.Age)
	assert.Equal(t, 1, backend.PodCount)
	assert.False(t, backend.ResourceQuota)

	winding := byName["winding-down"]
	assert.Equal(t, models.NamespaceTerminating, winding.Phase)
	assert.Equal(t, "3h", winding.Age)
	assert.Equal(t, 0, winding.PodCount)
}

func TestEnrich_NodeSummariesInMetadata(t *testing.T) {
	now := time.Now()
	clientset := fake.NewSimpleClientset(
		nodeObj("node-a", corev1.ConditionTrue),
		nodeObj("node-b", corev1.ConditionFalse),
	)

	out, err := testEnricher(now).enrich(context.Background(), "c1", clientset)
	require.NoError(t, err)

	require.Len(t, out.Metadata.Nodes, 2)
	assert.Equal(t, "Ready", out.Metadata.Nodes[0].Status)
	assert.Equal(t, "NotReady", out.Metadata.Nodes[1].Status)
	assert.Equal(t, "v1.29.4", out.Metadata.Nodes[0].Version)
}

func TestEnrich_NilConfigFails(t *testing.T) {
	_, err := NewEnricher(0).Enrich(context.Background(), "c1", nil)
	require.Error(t, err)
}
