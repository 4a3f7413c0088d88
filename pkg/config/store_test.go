package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SeedsDefaultsWhenNil(t *testing.T) {
	store := NewStore(nil)

	snap := store.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, DefaultSystemConfig(), snap)
}

func TestStore_ReplacePublishesNewConfig(t *testing.T) {
	initial := DefaultSystemConfig()
	store := NewStore(initial)

	before := store.Snapshot()

	fresh := DefaultSystemConfig()
	fresh.MaxIterations = 9
	store.Replace(fresh)

	assert.Equal(t, 9, store.Snapshot().MaxIterations)
	assert.Equal(t, initial.MaxIterations, before.MaxIterations,
		"a snapshot taken before the reload keeps its values")
}

func TestStore_ReplaceIgnoresNil(t *testing.T) {
	store := NewStore(DefaultSystemConfig())

	store.Replace(nil)

	require.NotNil(t, store.Snapshot())
}

func TestStore_ConcurrentReadersAndReloads(t *testing.T) {
	store := NewStore(DefaultSystemConfig())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			cfg := DefaultSystemConfig()
			cfg.MaxIterations = n + 1
			store.Replace(cfg)
		}(i)
		go func() {
			defer wg.Done()
			snap := store.Snapshot()
			assert.Greater(t, snap.MaxIterations, 0)
		}()
	}
	wg.Wait()
}
