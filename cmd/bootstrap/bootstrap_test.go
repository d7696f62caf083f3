package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHealth(t *testing.T, app *App) {
	t.Helper()
	rec := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_MemoryDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("APP_PORT", "18080")

	app, err := New(context.Background(), filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, ":18080", app.Server.Addr)
	assert.Nil(t, app.DB)
	serveHealth(t, app)
}

func TestNew_SQLiteDriver(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "patients.db"))

	app, err := New(context.Background(), filepath.Join(dir, ".env"))
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.DB)
	serveHealth(t, app)
}

func TestNew_RedisDriver(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_HOST", mr.Host())
	t.Setenv("REDIS_PORT", mr.Port())

	app, err := New(context.Background(), filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.RedisClient)
	serveHealth(t, app)
}

func TestNew_UnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "floppy")

	_, err := New(context.Background(), filepath.Join(t.TempDir(), ".env"))
	assert.ErrorContains(t, err, `unknown storage driver "floppy"`)
}
