package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/config"
)

func TestNewStoreDisabled(t *testing.T) {
	store, err := NewStore(config.AuditConfig{})

	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestNilStoreIsSafe(t *testing.T) {
	var store *Store

	// All operations on a nil store are no-ops
	store.Record(context.Background(), Entry{RequestID: "abc"})
	assert.NoError(t, store.HealthCheck(context.Background()))
	assert.NoError(t, store.Close())
}
