package json

import (
	"codeberg.org/miketth/layerboard/pkg/layerboard"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPlanStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.json")

	store, err := NewPlanStore(path)
	require.NoError(t, err)

	got, err := store.GetRendered("nav")
	require.NoError(t, err)
	assert.Nil(t, got)

	rendered := layerboard.RenderedLayer{
		Layer:      "nav",
		Digest:     "cafe",
		ImagePath:  "/cache/nav.png",
		RenderedAt: time.Unix(1700000000, 0).UTC(),
	}
	require.NoError(t, store.SetRendered(rendered))
	require.NoError(t, store.Save())
	require.NoError(t, store.Close())

	reopened, err := NewPlanStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err = reopened.GetRendered("nav")
	require.NoError(t, err)
	assert.Equal(t, &rendered, got)
}

func TestPlanStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	store, err := NewPlanStore(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.GetRendered("nav")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPlanStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := NewPlanStore(path)
	require.Error(t, err)
}

func TestPlanStore_SaveLooperSavesOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.json")

	store, err := NewPlanStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetRendered(layerboard.RenderedLayer{Layer: "base", Digest: "d"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, store.SaveLooper(ctx), context.Canceled)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"digest": "d"`)
}
