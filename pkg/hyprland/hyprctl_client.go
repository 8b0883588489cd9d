package hyprland

import (
	"codeberg.org/miketth/layerboard/pkg/layerboard"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"
)

// HyprctlClient sends requests on the hyprctl socket, one connection per
// request.
type HyprctlClient struct {
	socketPath string
}

func NewHyprctl() (*HyprctlClient, error) {
	socketPath, err := getSocketPath(Hyprctl)
	if err != nil {
		return nil, fmt.Errorf("get socket path: %w", err)
	}

	return &HyprctlClient{socketPath: socketPath}, nil
}

func (c *HyprctlClient) GetClients() ([]layerboard.Window, error) {
	var clients []client
	if err := c.requestJSON("clients", &clients); err != nil {
		return nil, err
	}

	out := make([]layerboard.Window, 0, len(clients))
	for _, cl := range clients {
		if !cl.Mapped {
			continue
		}
		out = append(out, cl.ToWindow())
	}

	return out, nil
}

func (c *HyprctlClient) GetMonitors() ([]layerboard.Monitor, error) {
	var monitors []monitor
	if err := c.requestJSON("monitors", &monitors); err != nil {
		return nil, err
	}

	out := make([]layerboard.Monitor, 0, len(monitors))
	for _, m := range monitors {
		out = append(out, m.ToMonitor())
	}

	return out, nil
}

func (c *HyprctlClient) MoveToWorkspaceSilent(window string, workspace int) error {
	resp, err := c.request(fmt.Sprintf("dispatch movetoworkspacesilent %d,address:%s", workspace, window), "")
	if err != nil {
		return err
	}

	if strings.TrimSpace(string(resp)) != "ok" {
		return fmt.Errorf("hyprctl: %s", resp)
	}

	return nil
}

func (c *HyprctlClient) requestJSON(request string, v any) error {
	resp, err := c.request(request, "j")
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", request, err)
	}

	return nil
}

func (c *HyprctlClient) request(request string, flags string) ([]byte, error) {
	conn, err := c.makeRequest(request, flags)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	resp, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("read response from hyprctl socket: %w", err)
	}

	return resp, nil
}

func (c *HyprctlClient) makeRequest(request string, flags string) (net.Conn, error) {
	conn, err := dial(c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect hyprctl socket: %w", err)
	}

	_, err = conn.Write([]byte(fmt.Sprintf("%s/%s", flags, request)))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("write to hyprctl socket: %w", err)
	}

	return conn, nil
}
