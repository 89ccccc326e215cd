package deploy

import "strings"

// Version types a deployment can be built from.
const (
	VersionTypeCustom = "CUSTOM"
	VersionTypeYAML   = "YAML"
	VersionTypeJSON   = "JSON"
)

// VersionTypes lists the choices offered on the type step, in display order.
var VersionTypes = []string{VersionTypeCustom, VersionTypeYAML, VersionTypeJSON}

// Host environments.
const (
	HostEnvTest = "TEST"
	HostEnvProd = "PROD"
)

// Health checker kinds.
const (
	HealthCheckNone = "NONE"
	HealthCheckTCP  = "TCP"
	HealthCheckHTTP = "HTTP"
)

const defaultHealthTimeout = 10

// HealthChecker describes how the platform probes a running instance.
type HealthChecker struct {
	Type           string `json:"type"`
	Port           int    `json:"port,omitempty"`
	TimeoutSeconds int    `json:"timeout,omitempty"`
	DelaySeconds   int    `json:"delay,omitempty"`
	URL            string `json:"url,omitempty"`
}

// Normalized returns the checker in canonical form: uppercase type (NONE
// when empty or unknown), fields that do not apply to the type cleared,
// and defaults filled in.
func (h HealthChecker) Normalized() HealthChecker {
	out := h
	out.Type = strings.ToUpper(strings.TrimSpace(out.Type))
	switch out.Type {
	case HealthCheckTCP, HealthCheckHTTP:
	default:
		out.Type = HealthCheckNone
	}
	if out.DelaySeconds < 0 {
		out.DelaySeconds = 0
	}
	switch out.Type {
	case HealthCheckNone:
		return HealthChecker{Type: HealthCheckNone}
	case HealthCheckTCP:
		out.URL = ""
	case HealthCheckHTTP:
		out.URL = strings.TrimSpace(out.URL)
		if out.URL == "" {
			out.URL = "/"
		} else if !strings.HasPrefix(out.URL, "/") {
			out.URL = "/" + out.URL
		}
	}
	if out.TimeoutSeconds <= 0 {
		out.TimeoutSeconds = defaultHealthTimeout
	}
	return out
}

// Config is the user-editable part of a draft.
type Config struct {
	DeployName    string        `json:"deployName"`
	Namespace     string        `json:"namespace"`
	VersionType   string        `json:"versionType"`
	ClusterID     string        `json:"clusterId"`
	HostEnv       string        `json:"hostEnv"`
	Replicas      int           `json:"replicas"`
	HealthChecker HealthChecker `json:"healthChecker"`
}

// IsCustomImage reports whether the draft continues on the image flow.
func (c Config) IsCustomImage() bool {
	return c.VersionType == VersionTypeCustom
}
