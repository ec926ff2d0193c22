package backend

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/config"
	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/storage"
	"expenses/internal/storage/memory"
)

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	_, err = FromAppConfig(&config.Config{Backend: "sheets"})
	assert.Error(t, err)

	cfg, err := FromAppConfig(&config.Config{Backend: "sqlite", DBPath: "/tmp/x.db"})
	require.NoError(t, err)
	assert.Equal(t, Config{Type: SQLiteBackend, DBPath: "/tmp/x.db"}, cfg)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"sqlite with path", Config{Type: SQLiteBackend, DBPath: "a.db"}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"memory", Config{Type: MemoryBackend}, false},
		{"unknown type", Config{Type: "csv"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetBackendTypeStrings(t *testing.T) {
	assert.Equal(t, []string{"sqlite", "memory"}, GetBackendTypeStrings())
}

func TestFactory_CreateSQLiteBackend(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(nil)

	res, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend, DBPath: filepath.Join(t.TempDir(), "nested", "ledger.db")})
	require.NoError(t, err)
	require.NotNil(t, res.Cleanup)
	t.Cleanup(func() { res.Close() })

	_, ok := res.Store.(*storage.SQLiteRepository)
	assert.True(t, ok)

	id, err := res.Store.Insert(ctx, core.Draft{Date: core.NewDate(2024, 5, 1), Category: core.Income})
	require.NoError(t, err)
	assert.Positive(t, id)
}

func TestFactory_CreateMemoryBackend(t *testing.T) {
	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: MemoryBackend})
	require.NoError(t, err)

	_, ok := res.Store.(*memory.Store)
	assert.True(t, ok)
	assert.NoError(t, res.Close())
}

func TestFactory_RejectsInvalidConfig(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: "sheets"})
	assert.Error(t, err)
}

func TestFactory_LogsDatabasePath(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: slog.LevelInfo, Format: "json", Output: &buf})
	path := filepath.Join(t.TempDir(), "ledger.db")

	res, err := NewFactory(logger).CreateBackend(context.Background(), Config{Type: SQLiteBackend, DBPath: path})
	require.NoError(t, err)
	t.Cleanup(func() { res.Close() })

	out := buf.String()
	assert.Contains(t, out, `"component":"backend"`)
	assert.Contains(t, out, `"`+log.FieldDBPath+`":"`+path+`"`)
}
