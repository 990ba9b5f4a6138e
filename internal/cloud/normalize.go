package cloud

import "github.com/aantony2/nautilus/internal/models"

// Status and version normalization is pure: given identical provider payloads
// it always yields identical canonical fields.

// NormalizeGKEStatus maps the GKE cluster status vocabulary to the canonical
// health status.
func NormalizeGKEStatus(status string) string {
	switch status {
	case "RUNNING":
		return models.StatusHealthy
	case "RECONCILING", "DEGRADED":
		return models.StatusWarning
	default:
		return models.StatusCritical
	}
}

// NormalizeAKSStatus maps the AKS provisioning state to the canonical health
// status.
func NormalizeAKSStatus(provisioningState string) string {
	switch provisioningState {
	case "Succeeded":
		return models.StatusHealthy
	case "Updating", "Upgrading":
		return models.StatusWarning
	default:
		return models.StatusCritical
	}
}

// NormalizeEKSStatus maps the EKS cluster status to the canonical health
// status.
func NormalizeEKSStatus(status string) string {
	switch status {
	case "ACTIVE":
		return models.StatusHealthy
	case "UPDATING":
		return models.StatusWarning
	default:
		return models.StatusCritical
	}
}

// VersionFreshness compares the running version against the version the
// cluster was created or last reconfigured with. Providers that do not expose
// the baseline pass an empty string and default to up to date.
func VersionFreshness(current, initial string) string {
	if initial == "" || current == initial {
		return models.VersionUpToDate
	}
	return models.VersionUpdateAvailable
}
