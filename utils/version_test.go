package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"l1board/utils"
)

func TestCheckVersionStatus(t *testing.T) {
	cfg := &utils.VersionConfig{CurrentStable: "0.5.1", MinSupported: "0.5.0"}

	tests := []struct {
		name         string
		version      string
		status       string
		needsUpgrade bool
	}{
		{"current", "0.5.1", "current", false},
		{"newer than stable", "0.6.0", "current", false},
		{"v prefix stripped", "v0.5.1", "current", false},
		{"outdated", "0.5.0", "outdated", true},
		{"unsupported", "0.4.9", "unsupported", true},
		{"garbage", "not-a-version", "unknown", false},
		{"empty", "", "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, needsUpgrade := utils.CheckVersionStatus(tt.version, cfg)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.needsUpgrade, needsUpgrade)
		})
	}
}

func TestCheckVersionStatusDefaultConfig(t *testing.T) {
	status, _ := utils.CheckVersionStatus(utils.DefaultVersionConfig.CurrentStable, nil)
	assert.Equal(t, "current", status)
}

func TestUpgradeMessage(t *testing.T) {
	cfg := &utils.VersionConfig{CurrentStable: "0.5.1", MinSupported: "0.5.0"}

	assert.Empty(t, utils.UpgradeMessage("0.5.1", cfg))
	assert.Contains(t, utils.UpgradeMessage("0.5.0", cfg), "0.5.1")
	assert.Contains(t, utils.UpgradeMessage("0.4.0", cfg), "no longer supported")
}
