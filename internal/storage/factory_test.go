package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreMemory(t *testing.T) {
	store, err := NewStore("memory", "")
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.NoError(t, CloseIfSupported(store))
}

func TestNewStoreUnsupported(t *testing.T) {
	_, err := NewStore("unknown", "")
	assert.ErrorIs(t, err, ErrUnsupportedStore)
}

func TestDefaultStoreKindIsConstructible(t *testing.T) {
	assert.Contains(t, []string{"memory", "sqlite"}, DefaultStoreKind())
}
