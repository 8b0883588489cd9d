package main

import (
	"bytes"
	"codeberg.org/miketth/layerboard/pkg/planstore/sqlite/migrations"
	"context"
	"database/sql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"path/filepath"
	"testing"
)

func TestDumpSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, migrations.Migrate(db, zap.NewNop().Sugar()))

	var buf bytes.Buffer
	require.NoError(t, dumpSchema(context.Background(), db, &buf))

	schema := buf.String()
	assert.Contains(t, schema, "create table rendered_layers")
	assert.Contains(t, schema, "create table sqlite_master")
	assert.NotContains(t, schema, "schema_migrations")
}
