package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/format"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mantidproj.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
product: QtiPlot
scripting_language: muParser
compress: true
backup: ignore
log_level: debug
accepted_products: [QtiPlot]
`)
	c, err := loadConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, "QtiPlot", c.Product)
	assert.Equal(t, "muParser", c.ScriptingLanguage)
	require.NotNil(t, c.Compress)
	assert.True(t, *c.Compress)
	assert.Equal(t, backupIgnore, c.Backup)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, []string{"QtiPlot"}, c.AcceptedProducts)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "log_level: warn\n")
	c, err := loadConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, format.ProductMantidPlot, c.Product)
	assert.Equal(t, backupAsk, c.Backup)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Nil(t, c.Compress)
}

func TestLoadConfigMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yaml")

	c, err := loadConfig(missing, false)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), c)

	_, err = loadConfig(missing, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad backup policy", "backup: sometimes\n"},
		{"bad log level", "log_level: loud\n"},
		{"empty product", "product: \"\"\n"},
		{"not yaml", "product: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.content), true)
			assert.Error(t, err)
		})
	}
}

func TestConfigOptions(t *testing.T) {
	log := logrus.New()
	tests := []struct {
		backup   string
		answer   string
		expected mantidproj.BackupDecision
	}{
		{backupIgnore, "", mantidproj.BackupIgnore},
		{backupAbort, "", mantidproj.BackupAbort},
		{backupAsk, "r\n", mantidproj.BackupRetry},
		{backupAsk, "Ignore\n", mantidproj.BackupIgnore},
		{backupAsk, "\n", mantidproj.BackupAbort},
		{backupAsk, "", mantidproj.BackupAbort},
	}

	for _, tt := range tests {
		c := defaultConfig()
		c.Backup = tt.backup
		var prompt bytes.Buffer
		opts := c.Options(log, strings.NewReader(tt.answer), &prompt)

		require.NotNil(t, opts.OnBackupFailure)
		if result := opts.OnBackupFailure(errors.New("disk full")); result != tt.expected {
			t.Errorf("backup %q answer %q = %v, expected %v", tt.backup, tt.answer, result, tt.expected)
		}
		if tt.backup == backupAsk && !strings.Contains(prompt.String(), "disk full") {
			t.Errorf("prompt %q does not mention the failure", prompt.String())
		}
		assert.Equal(t, format.ProductMantidPlot, opts.Product)
		assert.Same(t, log, opts.Log)
	}
}
