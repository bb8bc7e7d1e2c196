package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCommandMasksSecrets(t *testing.T) {
	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "--config", "../etc"})

	require.NoError(t, Execute())

	assert.Contains(t, out.String(), "[webserver]")
	assert.NotContains(t, out.String(), cfg.Webserver.TokenSigningKey)
}

func TestMissingConfig(t *testing.T) {
	rootCmd.SetArgs([]string{"config", "--config", t.TempDir()})

	require.Error(t, Execute())
}
