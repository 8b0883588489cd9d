package layerboard

import (
	"codeberg.org/miketth/layerboard/pkg/kanata"
	"codeberg.org/miketth/layerboard/pkg/kbd"
	"codeberg.org/miketth/layerboard/pkg/labels"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"go.uber.org/zap"
	"os"
	"time"
)

// FileWatcher is told about the files of every loaded config.
type FileWatcher interface {
	Watch(files []string) error
}

// Viewer keeps one rendered image per layer of the kanata config and shows
// the one of the active layer. It is not safe for concurrent use; events
// are handled one at a time by ProcessEvents.
type Viewer struct {
	configPath string
	readOpts   []kbd.Option

	classifier *labels.Classifier
	compositor Compositor
	display    Display
	store      PlanStore
	watcher    FileWatcher
	log        *zap.SugaredLogger

	cfg      *kanata.Config
	rendered map[string]string
	showing  string
}

type ViewerOption func(*Viewer)

func WithFileWatcher(watcher FileWatcher) ViewerOption {
	return func(v *Viewer) {
		v.watcher = watcher
	}
}

func WithReadOptions(opts ...kbd.Option) ViewerOption {
	return func(v *Viewer) {
		v.readOpts = opts
	}
}

func NewViewer(
	configPath string,
	classifier *labels.Classifier,
	compositor Compositor,
	display Display,
	store PlanStore,
	log *zap.SugaredLogger,
	opts ...ViewerOption,
) *Viewer {
	v := &Viewer{
		configPath: configPath,
		classifier: classifier,
		compositor: compositor,
		display:    display,
		store:      store,
		log:        log,
		rendered:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Load reads the kanata config at path, or the last loaded one if path is
// empty, and renders all of its layers. On error the previous config stays
// in use.
func (v *Viewer) Load(ctx context.Context, path string) error {
	if path == "" {
		path = v.configPath
	}

	cfg, err := kanata.LoadConfig(path, v.log, v.readOpts...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rendered := make(map[string]string, len(cfg.LayerOrder))
	for _, layer := range cfg.LayerOrder {
		image, err := v.renderLayer(ctx, cfg, layer)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			v.log.Warnw("cannot render layer", "layer", layer, "error", err)
			continue
		}
		rendered[layer] = image
	}

	v.configPath = path
	v.cfg = cfg
	v.rendered = rendered
	v.log.Infow("rendered layers", "config", path, "layers", len(rendered))

	if v.watcher != nil {
		if err := v.watcher.Watch(cfg.Files); err != nil {
			v.log.Warnw("cannot watch config files", "error", err)
		}
	}

	return nil
}

func (v *Viewer) renderLayer(ctx context.Context, cfg *kanata.Config, layer string) (string, error) {
	plans, err := v.classifier.RenderLayer(cfg, layer)
	if err != nil {
		return "", err
	}
	flat := labels.Flatten(plans)

	digest, err := Digest(layer, flat)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}

	cached, err := v.store.GetRendered(layer)
	if err != nil {
		v.log.Warnw("cannot read plan store", "layer", layer, "error", err)
	}
	if cached != nil && cached.Digest == digest && fileExists(cached.ImagePath) {
		v.log.Debugw("reusing rendered layer", "layer", layer, "image", cached.ImagePath)
		return cached.ImagePath, nil
	}

	image, err := v.compositor.Compose(ctx, layer, flat)
	if err != nil {
		return "", fmt.Errorf("compose: %w", err)
	}

	err = v.store.SetRendered(RenderedLayer{
		Layer:      layer,
		Digest:     digest,
		ImagePath:  image,
		RenderedAt: time.Now(),
	})
	if err != nil {
		v.log.Warnw("cannot write plan store", "layer", layer, "error", err)
	}

	v.log.Debugw("rendered layer", "layer", layer, "image", image)
	return image, nil
}

// Digest identifies the labels of a layer, so an image drawn for the same
// labels can be reused.
func Digest(layer string, flat []labels.Label) (string, error) {
	data, err := json.Marshal(struct {
		Layer  string         `json:"layer"`
		Labels []labels.Label `json:"labels"`
	}{layer, flat})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Config returns the config loaded last, or nil.
func (v *Viewer) Config() *kanata.Config {
	return v.cfg
}

// Image returns the rendered image of a layer.
func (v *Viewer) Image(layer string) (string, bool) {
	image, ok := v.rendered[layer]
	return image, ok
}

// Show displays the image of a layer in place of the current one.
func (v *Viewer) Show(ctx context.Context, layer string) error {
	image, ok := v.rendered[layer]
	if !ok {
		v.log.Warnw("no rendered image for layer", "layer", layer)
		return nil
	}

	if err := v.display.Hide(); err != nil {
		return fmt.Errorf("hide: %w", err)
	}
	if err := v.display.Show(ctx, image); err != nil {
		return fmt.Errorf("show: %w", err)
	}

	v.showing = layer
	v.log.Debugw("showing layer", "layer", layer)
	return nil
}

func (v *Viewer) Handle(ctx context.Context, ev Event) error {
	switch ev.Kind {
	case LayerChanged:
		v.log.Infow("active layer", "layer", ev.Layer)
		return v.show(ctx, ev.Layer)
	case ConfigReloaded:
		if err := v.Load(ctx, ev.Path); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			v.log.Warnw("config reload failed, keeping the previous one", "error", err)
			return nil
		}
		if v.showing != "" {
			return v.show(ctx, v.showing)
		}
	}
	return nil
}

// show is Show with display failures logged, so a broken viewer does not
// stop the event loop.
func (v *Viewer) show(ctx context.Context, layer string) error {
	err := v.Show(ctx, layer)
	if err != nil && ctx.Err() == nil {
		v.log.Warnw("cannot show layer", "layer", layer, "error", err)
		return nil
	}
	return err
}

// ProcessEvents handles events until ctx is done or events is closed.
func (v *Viewer) ProcessEvents(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := v.Handle(ctx, ev); err != nil {
				return fmt.Errorf("handle %s event: %w", ev.Kind, err)
			}
		}
	}
}
