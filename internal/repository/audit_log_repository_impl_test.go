package repository

import (
	"context"
	"testing"

	"patient-registration/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAuditLogRepository_Gorm(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, db.AutoMigrate(&entity.AuditLog{}))

	ctx := context.Background()
	repo := NewAuditLogRepository(db)

	created := &entity.AuditLog{
		Action:   entity.AuditActionPatientUpdate,
		EntityID: "P1000",
		Metadata: entity.JSON{"entity_id": "P1000", "new_value": map[string]interface{}{"bmi": "27.3"}},
	}
	require.NoError(t, repo.Create(ctx, created))
	assert.NotZero(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "P1000", found.EntityID)
	assert.Equal(t, "P1000", found.Metadata["entity_id"])

	missing, err := repo.FindByID(ctx, created.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
