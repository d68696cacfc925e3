package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/cosmos/solidity-ibc-eureka/relayer/aggregator"
)

// Config is the relayer binary's top-level TOML configuration: the log
// level, the source/destination RPC endpoints (logged at start-up; the
// binary does not connect to them) and the attestor aggregator settings.
type Config struct {
	LogLevel   string            `toml:"log_level"`
	SourceRPC  string            `toml:"source_rpc"`
	DestRPC    string            `toml:"dest_rpc"`
	Aggregator aggregator.Config `toml:"aggregator"`
}

// DefaultConfig mirrors the aggregator binary's DefaultAggregatorConfig
// pattern: sensible local defaults a developer can override per-field.
func DefaultConfig() Config {
	return Config{
		LogLevel:   "info",
		SourceRPC:  "127.0.0.1:26657",
		DestRPC:    "127.0.0.1:8545",
		Aggregator: aggregator.DefaultConfig(),
	}
}

// LoadConfig reads and decodes a TOML config file at path.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("relayer: reading config %s: %w", path, err)
	}
	if err := cfg.Aggregator.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WriteConfig writes cfg to path as TOML, mirroring the aggregator's
// WriteTomlConfig helper.
func WriteConfig(cfg Config, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(cfg)
}
