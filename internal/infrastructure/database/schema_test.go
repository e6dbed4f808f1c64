package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecer struct {
	stmts  []string
	failAt int
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if r.failAt >= 0 && len(r.stmts) == r.failAt {
		return pgconn.CommandTag{}, errors.New("boom")
	}
	r.stmts = append(r.stmts, sql)
	return pgconn.CommandTag{}, nil
}

func TestEnsureSchema_RunsAllStatements(t *testing.T) {
	rec := &recordingExecer{failAt: -1}

	require.NoError(t, EnsureSchema(context.Background(), rec))
	assert.Len(t, rec.stmts, len(schemaStatements))
	assert.True(t, strings.Contains(rec.stmts[0], "countries"))
}

func TestEnsureSchema_StopsOnError(t *testing.T) {
	rec := &recordingExecer{failAt: 2}

	err := EnsureSchema(context.Background(), rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema statement 2")
	assert.Len(t, rec.stmts, 2)
}

func TestBuildConnectionString(t *testing.T) {
	db := NewPostgresDB(&DBConfig{Host: "db", Port: 5432, Username: "u", Password: "p", DBName: "shop"})
	assert.Equal(t, "postgresql://u:p@db:5432/shop?sslmode=disable", db.buildConnectionString())
}
