package layerboard

import (
	"codeberg.org/miketth/layerboard/pkg/labels"
	"context"
	"time"
)

type EventListener interface {
	ReadLine() (string, error)
}

type EventKind int

const (
	LayerChanged EventKind = iota
	ConfigReloaded
)

func (k EventKind) String() string {
	switch k {
	case LayerChanged:
		return "layer-changed"
	case ConfigReloaded:
		return "config-reloaded"
	}
	return "unknown"
}

// Event is something the viewer reacts to. Path is only set on reloads and
// may be empty, meaning the config loaded last.
type Event struct {
	Kind  EventKind
	Layer string
	Path  string
}

// Compositor draws the labels of a layer onto the keyboard diagram and
// returns the path of the image.
type Compositor interface {
	Compose(ctx context.Context, layer string, labels []labels.Label) (string, error)
}

type Display interface {
	Show(ctx context.Context, path string) error
	Hide() error
}

type RenderedLayer struct {
	Layer      string    `json:"layer"`
	Digest     string    `json:"digest"`
	ImagePath  string    `json:"image_path"`
	RenderedAt time.Time `json:"rendered_at"`
}

type PlanStore interface {
	GetRendered(layer string) (*RenderedLayer, error)
	SetRendered(rendered RenderedLayer) error
}

type WindowManager interface {
	GetClients() ([]Window, error)
	GetMonitors() ([]Monitor, error)
	MoveToWorkspaceSilent(window string, workspace int) error
}

type Window struct {
	Address   string
	Class     string
	Monitor   int
	Workspace int
}

type Monitor struct {
	ID              int
	Name            string
	Focused         bool
	ActiveWorkspace int
}
