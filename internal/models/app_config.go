package models

import "fmt"

// ValidationPolicy decides how freshly submitted postings are published.
type ValidationPolicy string

const (
	// PolicyAdminApproval holds every submission for explicit admin review.
	PolicyAdminApproval ValidationPolicy = "ADMIN_APPROVAL"
	// PolicyAutoPublishTrusted publishes immediately when the submitter's
	// trust level meets the configured minimum.
	PolicyAutoPublishTrusted ValidationPolicy = "AUTO_PUBLISH_TRUSTED"
)

func ParseValidationPolicy(s string) (ValidationPolicy, error) {
	switch ValidationPolicy(s) {
	case PolicyAdminApproval, PolicyAutoPublishTrusted:
		return ValidationPolicy(s), nil
	}
	return "", fmt.Errorf("unknown validation policy %q", s)
}

// AppConfig is client-local and never persisted remotely. Each running
// instance may diverge; that scoping is intentional.
type AppConfig struct {
	Policy                  ValidationPolicy
	TrustedEmployerMinLevel int
}

// AutoPublish reports whether a submitter with the given trust level gets
// their posting approved without admin action.
func (c AppConfig) AutoPublish(trustLevel int) bool {
	return c.Policy == PolicyAutoPublishTrusted && trustLevel >= c.TrustedEmployerMinLevel
}
