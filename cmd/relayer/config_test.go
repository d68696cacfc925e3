package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteThenLoadConfigRoundTrips(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SourceRPC = "127.0.0.1:1234"
	cfg.Aggregator.QuorumThreshold = 3

	path := filepath.Join(t.TempDir(), "relayer.toml")
	require.NoError(t, WriteConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, cfg.SourceRPC, loaded.SourceRPC)
	require.Equal(t, cfg.Aggregator.QuorumThreshold, loaded.Aggregator.QuorumThreshold)
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(t, err)
}

func TestRootCmdHasStartSubcommand(t *testing.T) {
	root := RootCmd()
	cmd, _, err := root.Find([]string{"start"})
	require.NoError(t, err)
	require.Equal(t, "start", cmd.Name())
}

func TestDefaultConfigHasAttestorEndpoints(t *testing.T) {
	cfg := DefaultConfig()
	require.NotEmpty(t, cfg.Aggregator.AttestorEndpoints)
}
