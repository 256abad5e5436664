package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"checker/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferedGormLogger(t *testing.T, debug bool) (logger.Interface, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	base := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	return newGormSlogLogger(base, cfg), buf
}

func TestGormSlogLogger_RedactsCredentialStatements(t *testing.T) {
	l, buf := newBufferedGormLogger(t, true)

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return `UPDATE "user_credentials" SET "digest"='\xdeadbeef' WHERE user_id = '1'`, 1
	}, nil)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.NotContains(t, out, "deadbeef")
	assert.Contains(t, out, "redacted user_credentials statement")
}

func TestGormSlogLogger_KeepsOtherStatements(t *testing.T) {
	l, buf := newBufferedGormLogger(t, true)

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return `SELECT * FROM "users" WHERE email = 'a@b.c'`, 1
	}, nil)

	assert.Contains(t, buf.String(), "a@b.c")
}

func TestGormSlogLogger_IgnoresRecordNotFound(t *testing.T) {
	l, buf := newBufferedGormLogger(t, false)

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return `SELECT * FROM "users"`, 0
	}, gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_QueryInfoOnlyInDebug(t *testing.T) {
	l, buf := newBufferedGormLogger(t, false)

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return `SELECT 1`, 1
	}, nil)

	assert.Empty(t, buf.String())
}
