package storage

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"patient-registration/internal/domain/entity"
	domainRepo "patient-registration/internal/domain/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&entity.StorageEntry{}))
	return db
}

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func storages(t *testing.T) map[string]domainRepo.Storage {
	return map[string]domainRepo.Storage{
		"memory": NewMemoryStorage(),
		"gorm":   NewGormStorage(newSQLiteDB(t)),
		"redis":  NewRedisStorage(newRedisClient(t), "test:"),
	}
}

func TestStorage_GetSet(t *testing.T) {
	ctx := context.Background()

	for name, s := range storages(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.GetItem(ctx, entity.StorageKeyPatients)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.SetItem(ctx, entity.StorageKeyPatients, `[{"id":"P1000"}]`))
			v, ok, err := s.GetItem(ctx, entity.StorageKeyPatients)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"id":"P1000"}]`, v)

			require.NoError(t, s.SetItem(ctx, entity.StorageKeyPatients, `[]`))
			v, _, err = s.GetItem(ctx, entity.StorageKeyPatients)
			require.NoError(t, err)
			assert.Equal(t, `[]`, v)

			_, ok, err = s.GetItem(ctx, entity.StorageKeyNextPatientID)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestRedisStorage_UsesPrefix(t *testing.T) {
	ctx := context.Background()
	client := newRedisClient(t)

	s := NewRedisStorage(client, "registry:")
	require.NoError(t, s.SetItem(ctx, entity.StorageKeyNextPatientID, "1005"))

	v, err := client.Get(ctx, "registry:nextPatientId").Result()
	require.NoError(t, err)
	assert.Equal(t, "1005", v)
}

func TestRedisIDCounter_SeedsAndIncrements(t *testing.T) {
	ctx := context.Background()
	client := newRedisClient(t)

	counter := NewRedisIDCounter(client, "test:nextPatientId", 1000)

	for want := int64(1000); want < 1003; want++ {
		got, err := counter.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	stored, err := client.Get(ctx, "test:nextPatientId").Result()
	require.NoError(t, err)
	assert.Equal(t, "1003", stored)
}

func TestRedisIDCounter_ResumesFromStoredValue(t *testing.T) {
	ctx := context.Background()
	client := newRedisClient(t)
	require.NoError(t, client.Set(ctx, "c", "2040", 0).Err())

	got, err := NewRedisIDCounter(client, "c", 1000).Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2040), got)
}

func TestRedisIDCounter_BadValueFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	client := newRedisClient(t)
	require.NoError(t, client.Set(ctx, "c", "garbage", 0).Err())

	got, err := NewRedisIDCounter(client, "c", 1000).Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got)
}

func TestRedisIDCounter_ConcurrentCallersGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	counter := NewRedisIDCounter(newRedisClient(t), "c", 1000)

	const callers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := counter.Next(ctx)
			assert.NoError(t, err)
			mu.Lock()
			seen[strconv.FormatInt(n, 10)] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, callers)
}
