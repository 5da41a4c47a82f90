package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Options(t *testing.T) {
	_, err := Config{}.Options()
	assert.ErrorIs(t, err, ErrNotConfigured)

	opts, err := Config{URL: "redis://:pw@localhost"}.Options()
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Nil(t, opts.TLSConfig)

	opts, err = Config{URL: "rediss://cache.example:6380", Password: "override"}.Options()
	require.NoError(t, err)
	assert.Equal(t, "cache.example:6380", opts.Addr)
	assert.Equal(t, "override", opts.Password)
	assert.NotNil(t, opts.TLSConfig)

	_, err = Config{URL: "http://localhost"}.Options()
	assert.Error(t, err)
}

func TestHealthCheck_NilClient(t *testing.T) {
	assert.Error(t, HealthCheck(context.Background(), nil))
}
