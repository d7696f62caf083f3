package repository

import (
	"context"
	"errors"
	"testing"

	"patient-registration/internal/domain/entity"
	"patient-registration/internal/infrastructure/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStorage struct {
	err error
}

func (s failingStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	return "", false, s.err
}

func (s failingStorage) SetItem(ctx context.Context, key string, value string) error {
	return s.err
}

func TestPatientRepository_EmptyStorage(t *testing.T) {
	repo := NewPatientRepository(storage.NewMemoryStorage())

	patients, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, patients)
	assert.NotNil(t, patients)
}

func TestPatientRepository_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	repo := NewPatientRepository(store)

	in := []entity.Patient{
		{ID: "P1000", FirstName: "Ann", LastName: "Lee", Age: 52, DOB: "1971-01-01", Gender: "female", Height: 160, Weight: 70, Contact: "555", Email: "a@b.com", BMI: "27.3"},
		{ID: "P1001", FirstName: "Bo", LastName: "O'Brien", Age: 30, DOB: "1996-05-02", Gender: "male", Height: 180.5, Weight: 80, Contact: "556", Email: "b@b.com", BMI: "24.6"},
	}
	require.NoError(t, repo.Save(ctx, in))

	raw, ok, err := store.GetItem(ctx, entity.StorageKeyPatients)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"DOB":"1971-01-01"`)

	out, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPatientRepository_LoadsBrowserFormat(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	blob := `[{"firstname":"Ann","lastname":"Lee","age":"52","DOB":"1971-01-01","gender":"female",` +
		`"height":"160","weight":"70","contact":"555","email":"a@b.com","bmi":"27.3","id":"P1000"}]`
	require.NoError(t, store.SetItem(ctx, entity.StorageKeyPatients, blob))

	out, err := NewPatientRepository(store).Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 52, out[0].Age)
	assert.Equal(t, 160.0, out[0].Height)
	assert.Equal(t, 70.0, out[0].Weight)
	assert.Equal(t, "27.3", out[0].BMI)
	assert.Equal(t, "P1000", out[0].ID)
}

func TestPatientRepository_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	require.NoError(t, store.SetItem(ctx, entity.StorageKeyPatients, `{not json`))

	_, err := NewPatientRepository(store).Load(ctx)
	assert.Error(t, err)
}

func TestPatientRepository_StorageErrorsAreWrapped(t *testing.T) {
	boom := errors.New("boom")
	repo := NewPatientRepository(failingStorage{err: boom})

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, boom)

	err = repo.Save(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestIDCounterRepository(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	counter := NewIDCounterRepository(store, 1000)

	first, err := counter.Next(ctx)
	require.NoError(t, err)
	second, err := counter.Next(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), first)
	assert.Equal(t, int64(1001), second)

	raw, _, err := store.GetItem(ctx, entity.StorageKeyNextPatientID)
	require.NoError(t, err)
	assert.Equal(t, "1002", raw)

	// a fresh repository over the same storage continues the sequence
	third, err := NewIDCounterRepository(store, 1000).Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1002), third)
}

func TestIDCounterRepository_FallsBackToSeed(t *testing.T) {
	ctx := context.Background()

	for _, stored := range []string{"0", "abc", ""} {
		store := storage.NewMemoryStorage()
		require.NoError(t, store.SetItem(ctx, entity.StorageKeyNextPatientID, stored))

		n, err := NewIDCounterRepository(store, 1000).Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), n, "stored=%q", stored)
	}
}

func TestMemoryAuditLogRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAuditLogRepository()

	require.NoError(t, repo.Create(ctx, &entity.AuditLog{Action: entity.AuditActionPatientCreate, EntityID: "P1000"}))
	require.NoError(t, repo.Create(ctx, &entity.AuditLog{Action: entity.AuditActionPatientDelete, EntityID: "P1000"}))

	logs, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, int64(1), logs[0].ID)
	assert.Equal(t, entity.AuditActionPatientDelete, logs[1].Action)
	assert.False(t, logs[0].CreatedAt.IsZero())

	log, err := repo.FindByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, entity.AuditActionPatientDelete, log.Action)

	missing, err := repo.FindByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
