package aggregator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cosmos/solidity-ibc-eureka/relayer/aggregator"
)

func TestDefaultConfigValidates(t *testing.T) {
	require.NoError(t, aggregator.DefaultConfig().Validate())
}

func TestValidateRejectsCacheSizeAboveCeiling(t *testing.T) {
	cfg := aggregator.DefaultConfig()
	cfg.StateCacheMaxEntries = aggregator.MaxCacheEntriesCeiling + 1
	require.Error(t, cfg.Validate())

	cfg = aggregator.DefaultConfig()
	cfg.PacketCacheMaxEntries = aggregator.MaxCacheEntriesCeiling + 1
	require.Error(t, cfg.Validate())
}
