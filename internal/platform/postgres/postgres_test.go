package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_EmptyDSN(t *testing.T) {
	db, err := Connect(context.Background(), "  ", DefaultPoolConfig())
	require.Error(t, err)
	assert.Nil(t, db)
}

func TestOpen_EmptyDSNFallsBack(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, cleanup := Open(context.Background(), "", logger)
	assert.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
}

func TestDefaultPoolConfig(t *testing.T) {
	cfg := DefaultPoolConfig()
	assert.Positive(t, cfg.MaxOpenConns)
	assert.LessOrEqual(t, cfg.MaxIdleConns, cfg.MaxOpenConns)
	assert.Positive(t, cfg.ConnMaxLifetime)
}
