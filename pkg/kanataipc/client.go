package kanataipc

import (
	"bufio"
	"codeberg.org/miketth/layerboard/pkg/layerboard"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"net"
	"strings"
)

var (
	ErrUnknownMessage = errors.New("unknown message")
	ErrMalformed      = errors.New("malformed message")
)

// Client reads the notifications kanata sends on its TCP port, one JSON
// object per line.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	log    *zap.SugaredLogger
}

func Connect(ctx context.Context, addr string, log *zap.SugaredLogger) (*Client, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial kanata: %w", err)
	}

	return &Client{conn: conn, reader: bufio.NewReader(conn), log: log}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) ReadLine() (string, error) {
	str, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read from kanata: %w", err)
	}
	return strings.TrimRight(str, "\r\n"), nil
}

// RequestCurrentLayer asks kanata to send the name of the active layer.
func (c *Client) RequestCurrentLayer() error {
	if _, err := c.conn.Write([]byte(`{"RequestCurrentLayerName":{}}` + "\n")); err != nil {
		return fmt.Errorf("write to kanata: %w", err)
	}
	return nil
}

type layerName struct {
	New  string `json:"new"`
	Name string `json:"name"`
}

type message struct {
	LayerChange      *layerName `json:"LayerChange"`
	CurrentLayerName *layerName `json:"CurrentLayerName"`
	ConfigFileReload *struct {
		New string `json:"new"`
	} `json:"ConfigFileReload"`
}

// ParseMessage converts one line sent by kanata into an event.
func ParseMessage(line string) (layerboard.Event, error) {
	var msg message
	if err := json.Unmarshal([]byte(line), &msg); err != nil {
		return layerboard.Event{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	switch {
	case msg.LayerChange != nil:
		return layerboard.Event{Kind: layerboard.LayerChanged, Layer: msg.LayerChange.New}, nil
	case msg.CurrentLayerName != nil:
		return layerboard.Event{Kind: layerboard.LayerChanged, Layer: msg.CurrentLayerName.Name}, nil
	case msg.ConfigFileReload != nil:
		return layerboard.Event{Kind: layerboard.ConfigReloaded, Path: msg.ConfigFileReload.New}, nil
	}

	return layerboard.Event{}, ErrUnknownMessage
}

// Events forwards kanata's notifications to out until ctx is done or the
// connection fails. Lines that are not understood are logged and skipped.
func (c *Client) Events(ctx context.Context, out chan<- layerboard.Event) error {
	for {
		resultCh := make(chan string, 1)
		errCh := make(chan error, 1)
		go func() {
			line, err := c.ReadLine()
			if err != nil {
				errCh <- err
				return
			}
			resultCh <- line
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			return fmt.Errorf("get line: %w", err)
		case line := <-resultCh:
			ev, err := ParseMessage(line)
			if err != nil {
				c.log.Warnw("ignoring kanata message", "message", line, "error", err)
				continue
			}

			select {
			case out <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
