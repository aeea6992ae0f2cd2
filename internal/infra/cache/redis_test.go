package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/amai-mens-care/internal/config"
)

func TestNewRedisClientWithoutAddr(t *testing.T) {
	assert.Nil(t, NewRedisClient(config.RedisConfig{}))
}

func TestSnapshotStoreWithoutRedis(t *testing.T) {
	s := NewSnapshotStore(nil, time.Hour)

	require.NoError(t, s.Save(context.Background(), "dashboard", map[string]int{"a": 1}))

	var out map[string]int
	found, err := s.Load(context.Background(), "dashboard", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
}
