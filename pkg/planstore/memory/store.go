package memory

import "codeberg.org/miketth/layerboard/pkg/layerboard"

type PlanStore struct {
	rendered map[string]layerboard.RenderedLayer
}

func NewPlanStore() *PlanStore {
	return &PlanStore{
		rendered: make(map[string]layerboard.RenderedLayer),
	}
}

func (s *PlanStore) GetRendered(layer string) (*layerboard.RenderedLayer, error) {
	rendered, ok := s.rendered[layer]
	if !ok {
		return nil, nil
	}
	return &rendered, nil
}

func (s *PlanStore) SetRendered(rendered layerboard.RenderedLayer) error {
	s.rendered[rendered.Layer] = rendered
	return nil
}
