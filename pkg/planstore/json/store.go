package json

import (
	"codeberg.org/miketth/layerboard/pkg/layerboard"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

const saveInterval = time.Minute

// PlanStore keeps rendered layers in memory and writes them to a JSON file
// from SaveLooper.
type PlanStore struct {
	rendered map[string]layerboard.RenderedLayer
	file     *os.File
	lock     sync.Mutex
	dirty    bool
}

func NewPlanStore(filename string) (*PlanStore, error) {
	info, err := os.Stat(filename)
	fileExists := err == nil && info.Size() > 0

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	store := &PlanStore{
		rendered: make(map[string]layerboard.RenderedLayer),
		file:     file,
		dirty:    true,
	}

	if fileExists {
		err = store.load()
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("load: %w", err)
		}

		store.dirty = false
	}

	return store, nil
}

func (s *PlanStore) Close() error {
	return s.file.Close()
}

func (s *PlanStore) load() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	dec := json.NewDecoder(s.file)
	err = dec.Decode(&s.rendered)
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}

// Save writes the file if anything changed since the last save.
func (s *PlanStore) Save() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.dirty {
		return nil
	}

	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	err = s.file.Truncate(0)
	if err != nil {
		return fmt.Errorf("truncate file: %w", err)
	}

	enc := json.NewEncoder(s.file)
	enc.SetIndent("", "  ")
	err = enc.Encode(s.rendered)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	s.dirty = false

	return nil
}

func (s *PlanStore) SaveLooper(ctx context.Context) error {
	defer s.file.Close()

	for {
		select {
		case <-ctx.Done():
			err := s.Save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}

			return ctx.Err()
		case <-time.After(saveInterval):
			err := s.Save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
		}
	}
}

func (s *PlanStore) GetRendered(layer string) (*layerboard.RenderedLayer, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	rendered, ok := s.rendered[layer]
	if !ok {
		return nil, nil
	}
	return &rendered, nil
}

func (s *PlanStore) SetRendered(rendered layerboard.RenderedLayer) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.rendered[rendered.Layer] = rendered
	s.dirty = true
	return nil
}
