package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommission(t *testing.T) {
	assert.Equal(t, 17.5, Commission(50, 35))
	assert.Equal(t, 0.0, Commission(50, 0))
	assert.Equal(t, 3.33, Commission(33.3, 10))
	assert.Equal(t, 12.35, Commission(24.7, 50))
}

func TestIsPersistedClientID(t *testing.T) {
	assert.True(t, IsPersistedClientID("3f2b8c1e-9a4d-4c6b-8e21-7d5f0a9b1c2d"))
	assert.False(t, IsPersistedClientID("guest"))
	assert.False(t, IsPersistedClientID(""))
	assert.False(t, IsPersistedClientID("00000000-0000-0000-0000-000000000000"))
	assert.False(t, IsPersistedClientID("not-a-uuid-but-long-enough-to-pass-len"))
}
