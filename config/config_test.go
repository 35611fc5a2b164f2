package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dmm.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileDisablesModule(t *testing.T) {
	ep, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	require.False(t, ep.Enabled)
}

func TestLoadEnabledValidEndpoint(t *testing.T) {
	path := writeConfig(t, `{"sapient":{"ip":"192.168.1.10","port":5000,"enabled":true}}`)

	ep, err := Load(path)
	require.NoError(t, err)
	require.True(t, ep.Enabled)
	require.Equal(t, "192.168.1.10", ep.Host)
	require.Equal(t, 5000, ep.Port)
	require.Equal(t, "192.168.1.10:5000", ep.Addr())
}

func TestLoadDisabledEndpointSkipsValidation(t *testing.T) {
	path := writeConfig(t, `{"sapient":{"ip":"not-an-ip","port":-1,"enabled":false}}`)

	ep, err := Load(path)
	require.NoError(t, err)
	require.False(t, ep.Enabled)
}

func TestLoadEnabledInvalidHostFails(t *testing.T) {
	path := writeConfig(t, `{"sapient":{"ip":"not-an-ip","port":5000,"enabled":true}}`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadEnabledInvalidPortFails(t *testing.T) {
	path := writeConfig(t, `{"sapient":{"ip":"10.0.0.1","port":70000,"enabled":true}}`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := writeConfig(t, `not json`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateRejectsIPv6(t *testing.T) {
	ep := Endpoint{Host: "::1", Port: 5000}
	require.Error(t, ep.Validate())
}
