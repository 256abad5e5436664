package postgres

import (
	"database/sql"
	"fmt"
	"log/slog"
	"testing"
	"time"

	domainerrors "checker/internal/domain/errors"
	"checker/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

type fakeMigrator struct {
	tables map[string]bool
}

func (f fakeMigrator) HasTable(dst any) bool {
	return f.tables[dst.(schema.Tabler).TableName()]
}

func TestRequireTables(t *testing.T) {
	err := requireTables(fakeMigrator{tables: map[string]bool{"users": true, "user_credentials": true}})
	require.NoError(t, err)

	err = requireTables(fakeMigrator{tables: map[string]bool{"users": true}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidConfiguration))
	assert.Contains(t, err.Error(), "user_credentials")
}

func TestConnectionAttrsOmitCredentials(t *testing.T) {
	conn := &pgLib.DBConn{
		Master:   pgLib.ConnectionConfig{Host: "db", Port: "5432", UserName: "checker", Password: "hunter2"},
		Replicas: []pgLib.ConnectionConfig{{Host: "replica", Password: "hunter3"}},
		Database: "checker",
	}

	rendered := fmt.Sprint(connectionAttrs(conn)...)
	assert.Contains(t, rendered, "db")
	assert.Contains(t, rendered, "replicas=1")
	assert.NotContains(t, rendered, "hunter")
}

func TestPoolWaitReport(t *testing.T) {
	prev := sql.DBStats{WaitCount: 2, WaitDuration: 10 * time.Millisecond}

	_, _, ok := poolWaitReport(prev, prev)
	assert.False(t, ok)

	level, attrs, ok := poolWaitReport(prev, sql.DBStats{WaitCount: 4, WaitDuration: 20 * time.Millisecond})
	require.True(t, ok)
	assert.Equal(t, slog.LevelDebug, level)
	assert.Contains(t, attrs, slog.Duration("avgWait", 5*time.Millisecond))

	level, _, ok = poolWaitReport(prev, sql.DBStats{WaitCount: 3, WaitDuration: 90 * time.Millisecond})
	require.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)
}
