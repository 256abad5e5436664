package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"checker/config"
	domainerrors "checker/internal/domain/errors"
	"checker/internal/domain/lifecycle"
	"checker/internal/errors"
	"checker/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Params holds the dependencies of New.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the primary (and replica) connections. On start it pings the
// primary, requires the users and user_credentials tables and starts the
// pool monitor.
func New(params Params) (*gorm.DB, error) {
	conn := params.Config.Postgres
	if conn == nil {
		return nil, errors.WithStack(domainerrors.ErrInvalidConfiguration.WithDetails("postgres section is missing"))
	}

	db, err := pgLib.New(conn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Multi-step writes go through TransactionManager.Execute.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}
			if err := requireTables(db.WithContext(ctx).Migrator()); err != nil {
				return err
			}

			params.Logger.Info("Connected to PostgreSQL", connectionAttrs(conn)...)

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

type tableChecker interface {
	HasTable(dst any) bool
}

// requireTables fails startup when the schema has not been migrated; the
// service never creates tables itself.
func requireTables(m tableChecker) error {
	for _, table := range []schema.Tabler{&model.UserModel{}, &model.CredentialModel{}} {
		if !m.HasTable(table) {
			name := table.TableName()

			return errors.WithStack(domainerrors.ErrInvalidConfiguration.WithDetails("missing table " + name))
		}
	}

	return nil
}

// connectionAttrs describes where the pool points. Credentials stay out.
func connectionAttrs(conn *pgLib.DBConn) []any {
	return []any{
		slog.String("host", conn.Master.Host),
		slog.String("port", conn.Master.Port),
		slog.String("database", conn.Database),
		slog.Int("replicas", len(conn.Replicas)),
	}
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			if level, attrs, ok := poolWaitReport(prev, cur); ok {
				logger.LogAttrs(ctx, level, "Postgres pool wait detected", attrs...)
			}
			prev = cur
		}
	}
}

// poolWaitReport reports callers that waited for a connection since prev.
// Waits above dbPoolWarnDurationThreshold are warnings.
func poolWaitReport(prev, cur sql.DBStats) (slog.Level, []slog.Attr, bool) {
	waitDelta := cur.WaitCount - prev.WaitCount
	if waitDelta <= 0 {
		return slog.LevelDebug, nil, false
	}
	waitDurationDelta := cur.WaitDuration - prev.WaitDuration

	attrs := []slog.Attr{
		slog.Int64("waitCountDelta", waitDelta),
		slog.Duration("waitDurationDelta", waitDurationDelta),
		slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
		slog.Int("maxOpenConns", cur.MaxOpenConnections),
		slog.Int("openConns", cur.OpenConnections),
		slog.Int("inUseConns", cur.InUse),
		slog.Int("idleConns", cur.Idle),
	}

	level := slog.LevelDebug
	if waitDurationDelta >= dbPoolWarnDurationThreshold {
		level = slog.LevelWarn
	}

	return level, attrs, true
}
