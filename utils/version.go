package utils

import (
	"strings"

	"github.com/hashicorp/go-version"
)

// VersionConfig holds the network's node software version requirements.
type VersionConfig struct {
	CurrentStable string
	MinSupported  string
}

var DefaultVersionConfig = VersionConfig{
	CurrentStable: "0.5.1",
	MinSupported:  "0.5.0",
}

// CheckVersionStatus classifies a node's reported software version against
// the network requirements.
func CheckVersionStatus(nodeVersion string, cfg *VersionConfig) (status string, needsUpgrade bool) {
	if cfg == nil {
		cfg = &DefaultVersionConfig
	}

	nodeVersion = strings.TrimPrefix(nodeVersion, "v")

	nodeVer, err := version.NewVersion(nodeVersion)
	if err != nil {
		return "unknown", false
	}

	minSupported, _ := version.NewVersion(cfg.MinSupported)
	current, _ := version.NewVersion(cfg.CurrentStable)

	if nodeVer.LessThan(minSupported) {
		return "unsupported", true
	}
	if nodeVer.LessThan(current) {
		return "outdated", true
	}
	return "current", false
}

// UpgradeMessage returns a human-readable upgrade hint, empty when the node
// is up to date.
func UpgradeMessage(nodeVersion string, cfg *VersionConfig) string {
	if cfg == nil {
		cfg = &DefaultVersionConfig
	}

	status, needsUpgrade := CheckVersionStatus(nodeVersion, cfg)
	if !needsUpgrade {
		return ""
	}

	if status == "unsupported" {
		return "This version is no longer supported and will stop earning. Upgrade to " + cfg.CurrentStable + " immediately."
	}
	return "A newer version " + cfg.CurrentStable + " is available."
}
