package display

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"testing"
	"time"
)

func TestSwayimg_ShowHide(t *testing.T) {
	// "sleep 30" stands in for the viewer; the image path becomes the duration
	s := NewSwayimg("sleep", nil, zaptest.NewLogger(t).Sugar())

	assert.False(t, s.Running())
	require.NoError(t, s.Hide())

	require.NoError(t, s.Show(context.Background(), "30"))
	assert.True(t, s.Running())

	require.NoError(t, s.Show(context.Background(), "30"))
	assert.True(t, s.Running())

	require.NoError(t, s.Hide())
	assert.False(t, s.Running())
}

func TestSwayimg_ExitedViewer(t *testing.T) {
	s := NewSwayimg("true", nil, zaptest.NewLogger(t).Sugar())

	require.NoError(t, s.Show(context.Background(), "ignored"))
	assert.Eventually(t, func() bool { return !s.Running() }, time.Second, 10*time.Millisecond)
	require.NoError(t, s.Hide())
}

func TestSwayimg_ContextCancel(t *testing.T) {
	s := NewSwayimg("sleep", nil, zaptest.NewLogger(t).Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Show(ctx, "30"))
	cancel()

	assert.Eventually(t, func() bool { return !s.Running() }, time.Second, 10*time.Millisecond)
}

func TestSwayimg_MissingCommand(t *testing.T) {
	s := NewSwayimg("/nonexistent/viewer", DefaultArgs, zaptest.NewLogger(t).Sugar())
	require.Error(t, s.Show(context.Background(), "/tmp/base.png"))
	assert.False(t, s.Running())
}
