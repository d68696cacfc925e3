package aggregator

import "fmt"

// Config holds the aggregator's tunables, loaded from the relayer's TOML
// configuration file.
type Config struct {
	AttestorEndpoints      []string `toml:"attestor_endpoints"`
	AttestorQueryTimeoutMs int      `toml:"attestor_query_timeout_ms"`
	QuorumThreshold        int      `toml:"quorum_threshold"`
	StateCacheMaxEntries   int      `toml:"state_cache_max_entries"`
	PacketCacheMaxEntries  int      `toml:"packet_cache_max_entries"`
}

// DefaultConfig matches spec §5's stated resource policy defaults (a
// 100_000-entry cache ceiling, hard capped at 100_000_000).
func DefaultConfig() Config {
	return Config{
		AttestorEndpoints:      []string{"127.0.0.1:9000"},
		AttestorQueryTimeoutMs: 5000,
		QuorumThreshold:        1,
		StateCacheMaxEntries:   100_000,
		PacketCacheMaxEntries:  100_000,
	}
}

// MaxCacheEntriesCeiling is the hard ceiling on StateCacheMaxEntries and
// PacketCacheMaxEntries, §5.
const MaxCacheEntriesCeiling = 100_000_000

// Validate rejects a cache bound above MaxCacheEntriesCeiling.
func (c Config) Validate() error {
	if c.StateCacheMaxEntries > MaxCacheEntriesCeiling {
		return fmt.Errorf("aggregator: state_cache_max_entries %d exceeds ceiling %d", c.StateCacheMaxEntries, MaxCacheEntriesCeiling)
	}
	if c.PacketCacheMaxEntries > MaxCacheEntriesCeiling {
		return fmt.Errorf("aggregator: packet_cache_max_entries %d exceeds ceiling %d", c.PacketCacheMaxEntries, MaxCacheEntriesCeiling)
	}
	return nil
}
