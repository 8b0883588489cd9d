package layerboard

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"io"
	"testing"
)

type fakeListener struct {
	lines []string
}

func (l *fakeListener) ReadLine() (string, error) {
	if len(l.lines) == 0 {
		return "", io.EOF
	}
	line := l.lines[0]
	l.lines = l.lines[1:]
	return line, nil
}

type move struct {
	window    string
	workspace int
}

type fakeWM struct {
	clients  []Window
	monitors []Monitor
	moves    []move
}

func (w *fakeWM) GetClients() ([]Window, error) {
	return w.clients, nil
}

func (w *fakeWM) GetMonitors() ([]Monitor, error) {
	return w.monitors, nil
}

func (w *fakeWM) MoveToWorkspaceSilent(window string, workspace int) error {
	w.moves = append(w.moves, move{window, workspace})
	return nil
}

func twoMonitors(focused int) []Monitor {
	return []Monitor{
		{ID: 0, Name: "DP-1", Focused: focused == 0, ActiveWorkspace: 1},
		{ID: 1, Name: "HDMI-A-1", Focused: focused == 1, ActiveWorkspace: 7},
	}
}

var viewerWindow = Window{Address: "0x55d1", Class: WindowClass, Monitor: 0, Workspace: 1}

func TestPlacer(t *testing.T) {
	tests := []struct {
		name     string
		clients  []Window
		monitors []Monitor
		line     string
		want     []move
	}{
		{
			name:     "viewer on the focused monitor is moved",
			clients:  []Window{{Address: "0x1", Class: "kitty"}, viewerWindow},
			monitors: twoMonitors(0),
			line:     "focusedmon>>DP-1,1",
			want:     []move{{"0x55d1", 7}},
		},
		{
			name:     "moved on window focus too",
			clients:  []Window{viewerWindow},
			monitors: twoMonitors(0),
			line:     "activewindow>>kitty,~",
			want:     []move{{"0x55d1", 7}},
		},
		{
			name:     "viewer on another monitor stays",
			clients:  []Window{viewerWindow},
			monitors: twoMonitors(1),
			line:     "focusedmon>>HDMI-A-1,7",
		},
		{
			name:     "single monitor",
			clients:  []Window{viewerWindow},
			monitors: twoMonitors(0)[:1],
			line:     "focusedmon>>DP-1,1",
		},
		{
			name:     "no viewer window",
			clients:  []Window{{Address: "0x1", Class: "kitty"}},
			monitors: twoMonitors(0),
			line:     "focusedmon>>DP-1,1",
		},
		{
			name:     "other events are ignored",
			clients:  []Window{viewerWindow},
			monitors: twoMonitors(0),
			line:     "workspace>>2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wm := &fakeWM{clients: tt.clients, monitors: tt.monitors}
			p := NewPlacer(&fakeListener{lines: []string{tt.line}}, wm, zap.NewNop().Sugar())

			err := p.ProcessLines(context.Background())
			require.ErrorIs(t, err, io.EOF)
			assert.Equal(t, tt.want, wm.moves)
		})
	}
}

func TestPlacer_InvalidLine(t *testing.T) {
	p := NewPlacer(&fakeListener{lines: []string{"garbage"}}, &fakeWM{}, zap.NewNop().Sugar())

	err := p.ProcessLines(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}
