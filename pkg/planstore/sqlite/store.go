package sqlite

import (
	"codeberg.org/miketth/layerboard/pkg/layerboard"
	"codeberg.org/miketth/layerboard/pkg/planstore/sqlite/migrations"
	"context"
	"database/sql"
	"errors"
	"fmt"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"time"
)

const (
	getRenderedQuery = `select layer, digest, image_path, rendered_at from rendered_layers where layer = ?`
	setRenderedQuery = `insert into rendered_layers (layer, digest, image_path, rendered_at) values (?, ?, ?, ?)
on conflict (layer) do update set digest = excluded.digest, image_path = excluded.image_path, rendered_at = excluded.rendered_at`
)

type PlanStore struct {
	db *sql.DB
}

func NewPlanStore(filename string, log *zap.SugaredLogger) (*PlanStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := migrations.Migrate(db, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &PlanStore{db: db}, nil
}

func (s *PlanStore) Close() error {
	return s.db.Close()
}

func (s *PlanStore) GetRendered(layer string) (*layerboard.RenderedLayer, error) {
	var (
		rendered   layerboard.RenderedLayer
		renderedAt int64
	)

	row := s.db.QueryRowContext(context.Background(), getRenderedQuery, layer)
	err := row.Scan(&rendered.Layer, &rendered.Digest, &rendered.ImagePath, &renderedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("sqlite select: %w", err)
	}

	rendered.RenderedAt = time.Unix(renderedAt, 0)
	return &rendered, nil
}

func (s *PlanStore) SetRendered(rendered layerboard.RenderedLayer) error {
	_, err := s.db.ExecContext(context.Background(), setRenderedQuery,
		rendered.Layer,
		rendered.Digest,
		rendered.ImagePath,
		rendered.RenderedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}

	return nil
}
