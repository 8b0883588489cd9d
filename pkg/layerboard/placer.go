package layerboard

import (
	"context"
	"fmt"
	"go.uber.org/zap"
	"strings"
)

// WindowClass is the window class of the layer image.
const WindowClass = "kanata-layer-view"

// Placer keeps the layer image off the monitor the user is working on.
type Placer struct {
	listener EventListener
	wm       WindowManager
	log      *zap.SugaredLogger
}

func NewPlacer(listener EventListener, wm WindowManager, log *zap.SugaredLogger) *Placer {
	return &Placer{
		listener: listener,
		wm:       wm,
		log:      log,
	}
}

func (p *Placer) ProcessLines(ctx context.Context) error {
	for {
		resultCh := make(chan string, 1)
		errCh := make(chan error, 1)
		go func() {
			line, err := p.listener.ReadLine()
			if err != nil {
				errCh <- err
				return
			}
			resultCh <- line
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line := <-resultCh:
			err := p.processLine(line)
			if err != nil {
				return fmt.Errorf("process line: %w", err)
			}
		case err := <-errCh:
			return fmt.Errorf("get line: %w", err)
		}
	}
}

func (p *Placer) processLine(line string) error {
	evType, _, found := strings.Cut(line, ">>")
	if !found {
		return fmt.Errorf("invalid line: %q", line)
	}

	switch evType {
	case "focusedmon", "activewindow":
		if err := p.place(); err != nil {
			p.log.Warnw("cannot place layer window", "error", err)
		}
	}

	return nil
}

func (p *Placer) place() error {
	clients, err := p.wm.GetClients()
	if err != nil {
		return fmt.Errorf("get clients: %w", err)
	}

	var viewer *Window
	for i := range clients {
		if clients[i].Class == WindowClass {
			viewer = &clients[i]
			break
		}
	}
	if viewer == nil {
		return nil
	}

	monitors, err := p.wm.GetMonitors()
	if err != nil {
		return fmt.Errorf("get monitors: %w", err)
	}

	target, ok := otherMonitor(monitors, viewer.Monitor)
	if !ok {
		return nil
	}

	p.log.Debugw("moving layer window", "monitor", target.Name, "workspace", target.ActiveWorkspace)
	if err := p.wm.MoveToWorkspaceSilent(viewer.Address, target.ActiveWorkspace); err != nil {
		return fmt.Errorf("move window: %w", err)
	}

	return nil
}

// otherMonitor returns the monitor after the focused one if the focused
// monitor is the one showing the viewer.
func otherMonitor(monitors []Monitor, viewerMonitor int) (Monitor, bool) {
	for i, m := range monitors {
		if !m.Focused {
			continue
		}
		if m.ID != viewerMonitor || len(monitors) < 2 {
			return Monitor{}, false
		}
		return monitors[(i+1)%len(monitors)], true
	}
	return Monitor{}, false
}
