//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
	"github.com/Ngole71/eligibility-checker/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("eligibility_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestStore_AggregateEmpty(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	snap, err := NewStore(db).Aggregate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatisticsSnapshot{}, snap)
}

func TestStore_AppendAndAggregate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewStore(db)
	ctx := context.Background()

	id1, createdAt, err := store.Append(ctx, command(), 34, true)
	require.NoError(t, err)
	assert.Positive(t, id1)
	assert.WithinDuration(t, time.Now(), createdAt, time.Minute)

	id2, _, err := store.Append(ctx, command(), 14, false)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	snap, err := store.Aggregate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), snap.TotalCount)
	assert.Equal(t, int64(1), snap.EligibleCount)
	assert.Equal(t, int64(1), snap.IneligibleCount)
	assert.InDelta(t, 24.0, snap.AverageAge, 1e-9)
}

func TestStore_SchemaRejectsInconsistentRows(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewStore(db)
	ctx := context.Background()

	_, _, err := store.Append(ctx, command(), 30, false)
	assert.ErrorIs(t, err, ports.ErrConstraintViolation)

	_, _, err = store.Append(ctx, command(), 200, true)
	assert.ErrorIs(t, err, ports.ErrConstraintViolation)

	snap, err := store.Aggregate(ctx)
	require.NoError(t, err)
	assert.Zero(t, snap.TotalCount)
}

func TestStore_ConcurrentAppends(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewStore(db)
	ctx := context.Background()
	const writers = 16

	var wg sync.WaitGroup
	ids := make(chan int64, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, _, err := store.Append(ctx, command(), 34, true)
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]struct{}{}
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
	snap, err := store.Aggregate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(writers), snap.TotalCount)
}

func TestStore_UnavailableAfterClose(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	store := NewStore(db)
	_, err = store.Aggregate(context.Background())
	assert.ErrorIs(t, err, ports.ErrStorageUnavailable)
	assert.ErrorIs(t, store.Ping(context.Background()), ports.ErrStorageUnavailable)
}
