package hyprland

import (
	"fmt"
	"github.com/adrg/xdg"
	"net"
	"os"
	"path/filepath"
)

func connect(sock socketType) (net.Conn, error) {
	socketPath, err := getSocketPath(sock)
	if err != nil {
		return nil, fmt.Errorf("get socket path: %w", err)
	}

	return dial(socketPath)
}

func dial(socketPath string) (net.Conn, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	return conn, nil
}

type socketType int

const (
	Hyprctl socketType = iota
	Socket2
)

func (s socketType) fileName() string {
	switch s {
	case Hyprctl:
		return ".socket.sock"
	case Socket2:
		return ".socket2.sock"
	}
	return ""
}

// getSocketPath looks for the socket in $XDG_RUNTIME_DIR/hypr first, where
// Hyprland keeps it since 0.40, then in /tmp/hypr.
func getSocketPath(sock socketType) (string, error) {
	signature := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if signature == "" {
		return "", fmt.Errorf("HYPRLAND_INSTANCE_SIGNATURE is not set, %w", ErrNotRunning)
	}

	name := sock.fileName()
	if name == "" {
		return "", fmt.Errorf("unknown socket type: %d", sock)
	}

	candidates := []string{
		filepath.Join(xdg.RuntimeDir, "hypr", signature, name),
		filepath.Join("/tmp/hypr", signature, name),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no %s for instance %s, %w", name, signature, ErrNotRunning)
}
