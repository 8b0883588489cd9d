package main

import (
	"codeberg.org/miketth/layerboard/pkg/display"
	"codeberg.org/miketth/layerboard/pkg/hyprland"
	"codeberg.org/miketth/layerboard/pkg/kanata"
	"codeberg.org/miketth/layerboard/pkg/kanataipc"
	"codeberg.org/miketth/layerboard/pkg/labels"
	"codeberg.org/miketth/layerboard/pkg/layerboard"
	jsonstore "codeberg.org/miketth/layerboard/pkg/planstore/json"
	"codeberg.org/miketth/layerboard/pkg/planstore/memory"
	sqlitestore "codeberg.org/miketth/layerboard/pkg/planstore/sqlite"
	"codeberg.org/miketth/layerboard/pkg/render"
	"codeberg.org/miketth/layerboard/pkg/xkb"
	"codeberg.org/miketth/layerboard/pkg/xkblayouts"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

type runCmd struct {
	KanataHost     string `help:"Host of kanata's TCP server." default:"127.0.0.1"`
	KanataPort     int    `help:"Port of kanata's TCP server." default:"5829"`
	RenderCommand  string `help:"Command drawing a layer image from a JSON request on stdin." default:"kanata-layer-render"`
	DisplayCommand string `help:"Image viewer showing the active layer." default:"${display_command}"`
	CacheDir       string `help:"Where layer images and the render cache live." type:"path" default:"${cache_dir}"`
	Store          string `help:"Render cache backend." enum:"memory,json,sqlite" default:"sqlite"`
	Watch          bool   `help:"Reload when the kanata config files change."`
	Placer         bool   `help:"Keep the layer window off the focused Hyprland monitor." default:"true" negatable:""`
}

func (r *runCmd) Run(ctx context.Context, g *Globals, log *zap.SugaredLogger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	classifier, err := g.newClassifier(ctx, log)
	if err != nil {
		return err
	}

	compositor, err := render.NewCommand(strings.Fields(r.RenderCommand), r.CacheDir, log)
	if err != nil {
		return fmt.Errorf("create compositor: %w", err)
	}

	viewerDisplay := display.NewSwayimg(r.DisplayCommand, display.DefaultArgs, log)
	defer func() {
		if err := viewerDisplay.Hide(); err != nil {
			log.Warnw("cannot hide layer image", "error", err)
		}
	}()

	var (
		wg      sync.WaitGroup
		errChan = make(chan error, 6)
	)
	goRun := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				errChan <- fmt.Errorf("%s: %w", name, err)
			}
		}()
	}

	var store layerboard.PlanStore
	switch r.Store {
	case "memory":
		store = memory.NewPlanStore()
	case "json":
		s, err := jsonstore.NewPlanStore(filepath.Join(r.CacheDir, "layers.json"))
		if err != nil {
			return fmt.Errorf("create plan store: %w", err)
		}
		defer s.Close()
		goRun("save plan store", s.SaveLooper)
		store = s
	case "sqlite":
		s, err := sqlitestore.NewPlanStore(filepath.Join(r.CacheDir, "layers.db"), log)
		if err != nil {
			return fmt.Errorf("create plan store: %w", err)
		}
		defer s.Close()
		store = s
	default:
		return fmt.Errorf("unknown store %q", r.Store)
	}

	events := make(chan layerboard.Event, 16)

	var viewerOpts []layerboard.ViewerOption
	if r.Watch {
		watcher, err := layerboard.NewConfigWatcher(layerboard.DefaultDebounce, log)
		if err != nil {
			return fmt.Errorf("create config watcher: %w", err)
		}
		defer watcher.Close()
		viewerOpts = append(viewerOpts, layerboard.WithFileWatcher(watcher))
		goRun("watch config", func(ctx context.Context) error {
			return watcher.Run(ctx, events)
		})
	}

	viewer := layerboard.NewViewer(g.KanataConfig, classifier, compositor, viewerDisplay, store, log, viewerOpts...)
	if err := viewer.Load(ctx, ""); err != nil {
		return fmt.Errorf("load kanata config: %w", err)
	}

	addr := net.JoinHostPort(r.KanataHost, strconv.Itoa(r.KanataPort))
	kanataClient, err := kanataipc.Connect(ctx, addr, log)
	if err != nil {
		return fmt.Errorf("connect to kanata: %w", err)
	}
	defer kanataClient.Close()

	if err := kanataClient.RequestCurrentLayer(); err != nil {
		log.Warnw("cannot request current layer", "error", err)
	}

	goRun("kanata events", func(ctx context.Context) error {
		return kanataClient.Events(ctx, events)
	})
	goRun("process events", func(ctx context.Context) error {
		return viewer.ProcessEvents(ctx, events)
	})
	goRun("systemd notify", systemdNotifyLoop)

	if r.Placer {
		placer, closePlacer, err := newPlacer(log)
		switch {
		case errors.Is(err, hyprland.ErrNotRunning):
			log.Infow("not placing the layer window", "reason", err)
		case err != nil:
			return err
		default:
			defer closePlacer()
			goRun("place window", placer.ProcessLines)
		}
	}

	log.Infow("started layerboard", "kanata", addr, "layers", len(viewer.Config().LayerOrder))

	err = <-errChan
	cancel()
	wg.Wait()

	if errors.Is(err, context.Canceled) {
		log.Info("shutting down")
		return nil
	}
	return err
}

func newPlacer(log *zap.SugaredLogger) (*layerboard.Placer, func(), error) {
	client, err := hyprland.Connect()
	if err != nil {
		return nil, nil, fmt.Errorf("connect to hyprland: %w", err)
	}

	hyprctl, err := hyprland.NewHyprctl()
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect hyprctl: %w", err)
	}

	return layerboard.NewPlacer(client, hyprctl, log), func() { client.Close() }, nil
}

type dumpCmd struct {
	Layer string `help:"Only print this layer."`
}

func (d *dumpCmd) Run(ctx context.Context, g *Globals, log *zap.SugaredLogger) error {
	classifier, err := g.newClassifier(ctx, log)
	if err != nil {
		return err
	}

	cfg, err := kanata.LoadConfig(g.KanataConfig, log)
	if err != nil {
		return fmt.Errorf("load kanata config: %w", err)
	}

	return dumpLayers(os.Stdout, classifier, cfg, d.Layer)
}

type dumpedLayer struct {
	Layer  string         `yaml:"layer"`
	Labels []labels.Label `yaml:"labels"`
}

func dumpLayers(w io.Writer, classifier *labels.Classifier, cfg *kanata.Config, only string) error {
	layers := cfg.LayerOrder
	if only != "" {
		if _, err := cfg.Layer(only); err != nil {
			return err
		}
		layers = []string{only}
	}

	out := make([]dumpedLayer, 0, len(layers))
	for _, layer := range layers {
		plans, err := classifier.RenderLayer(cfg, layer)
		if err != nil {
			return err
		}
		out = append(out, dumpedLayer{Layer: layer, Labels: labels.Flatten(plans)})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// newClassifier loads the keymap of the configured layout and builds the
// classifier both commands share.
func (g *Globals) newClassifier(ctx context.Context, log *zap.SugaredLogger) (*labels.Classifier, error) {
	registry, err := xkblayouts.ParseLayouts(g.Keyboard.Evdev)
	if err != nil {
		log.Warnw("cannot read layout registry", "path", g.Keyboard.Evdev, "error", err)
	} else if err := registry.Check(g.Keyboard.Layout, g.Keyboard.Variant); err != nil {
		log.Warnw("layout not in registry", "error", err)
	} else {
		log.Infow("using keyboard layout", "layout", registry.PrettyName(g.Keyboard.Layout, g.Keyboard.Variant))
	}

	keymap, err := xkb.LoadKeymap(ctx, g.Keyboard.Layout, g.Keyboard.Variant, g.Keyboard.Keymap)
	if err != nil {
		return nil, fmt.Errorf("load keymap: %w", err)
	}

	return labels.NewClassifier(
		xkb.NewResolver(keymap, log),
		log,
		labels.WithLayerLabels(g.LayerLabels),
	), nil
}
