package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Run("unset variables use zero values", func(t *testing.T) {
		cfg, err := loadEnvConfig()
		require.NoError(t, err)
		assert.Empty(t, cfg.ConfigPath)
		assert.Empty(t, cfg.Writer)
		assert.Empty(t, cfg.OutputDir)
		assert.Equal(t, -1, cfg.ReportLevel)
		assert.Equal(t, -1, cfg.HaltLevel)
	})

	t.Run("all variables set", func(t *testing.T) {
		t.Setenv("DOCPRESS_CONFIG", "/etc/custom.conf")
		t.Setenv("DOCPRESS_WRITER", "text")
		t.Setenv("DOCPRESS_OUTPUT_DIR", "/tmp/out")
		t.Setenv("DOCPRESS_REPORT_LEVEL", "2")
		t.Setenv("DOCPRESS_HALT_LEVEL", "9")

		cfg, err := loadEnvConfig()
		require.NoError(t, err)
		assert.Equal(t, "/etc/custom.conf", cfg.ConfigPath)
		assert.Equal(t, "text", cfg.Writer)
		assert.Equal(t, "/tmp/out", cfg.OutputDir)
		assert.Equal(t, 2, cfg.ReportLevel)
		assert.Equal(t, 9, cfg.HaltLevel)
	})

	t.Run("malformed level is a usage error", func(t *testing.T) {
		t.Setenv("DOCPRESS_REPORT_LEVEL", "loud")
		_, err := loadEnvConfig()
		assert.ErrorIs(t, err, errUsage)
	})

	t.Run("level outside range is a usage error", func(t *testing.T) {
		t.Setenv("DOCPRESS_HALT_LEVEL", "11")
		_, err := loadEnvConfig()
		assert.ErrorIs(t, err, errUsage)
	})
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Run("typos are flagged", func(t *testing.T) {
		t.Setenv("DOCPRESS_REPORTLEVEL", "4")
		var buf strings.Builder
		warnUnknownEnvVars(&buf)
		assert.Contains(t, buf.String(), "DOCPRESS_REPORTLEVEL")
	})

	t.Run("known variables stay silent", func(t *testing.T) {
		t.Setenv("DOCPRESS_WRITER", "text")
		var buf strings.Builder
		warnUnknownEnvVars(&buf)
		assert.NotContains(t, buf.String(), "DOCPRESS_WRITER")
	})
}
