package display

import (
	"codeberg.org/miketth/layerboard/pkg/layerboard"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

const (
	DefaultCommand = "swayimg"
	stopTimeout    = 2 * time.Second
)

// DefaultArgs open a borderless, transparent window with the class the
// window placer looks for.
var DefaultArgs = []string{"--background=none", "--class=" + layerboard.WindowClass, "--scale=fit"}

// Swayimg shows one image at a time in an image viewer process.
type Swayimg struct {
	command string
	args    []string
	log     *zap.SugaredLogger

	mu   sync.Mutex
	cmd  *exec.Cmd
	done chan struct{}
}

func NewSwayimg(command string, args []string, log *zap.SugaredLogger) *Swayimg {
	return &Swayimg{
		command: command,
		args:    args,
		log:     log,
	}
}

// Show replaces the running viewer with one showing path. The viewer is
// killed when ctx is done.
func (s *Swayimg) Show(ctx context.Context, path string) error {
	if err := s.Hide(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	args := append(append([]string{}, s.args...), path)
	cmd := exec.CommandContext(ctx, s.command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", s.command, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := cmd.Wait(); err != nil {
			s.log.Debugw("image viewer exited", "path", path, "error", err)
		}
	}()

	s.log.Debugw("showing image", "path", path, "pid", cmd.Process.Pid)
	s.cmd = cmd
	s.done = done
	return nil
}

// Hide stops the running viewer, if any.
func (s *Swayimg) Hide() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd == nil {
		return nil
	}
	cmd, done := s.cmd, s.done
	s.cmd, s.done = nil, nil

	if err := cmd.Process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("stop %s: %w", s.command, err)
	}

	select {
	case <-done:
		return nil
	case <-time.After(stopTimeout):
	}

	s.log.Warnw("image viewer ignored SIGTERM, killing it", "pid", cmd.Process.Pid)
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill %s: %w", s.command, err)
	}
	<-done
	return nil
}

// Running reports whether a viewer process is alive.
func (s *Swayimg) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}
