package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alumni-portal/backend/config"
	"github.com/alumni-portal/backend/internal/alumni"
	"github.com/alumni-portal/backend/internal/auditlog"
	"github.com/alumni-portal/backend/internal/auth"
	"github.com/alumni-portal/backend/internal/directory"
	"github.com/alumni-portal/backend/internal/donation"
	"github.com/alumni-portal/backend/internal/event"
	"github.com/alumni-portal/backend/internal/mentorship"
	"github.com/alumni-portal/backend/internal/opportunity"
)

// Connect opens the postgres pool. Driver errors are translated so unique and
// foreign key violations surface as gorm.ErrDuplicatedKey and
// gorm.ErrForeignKeyViolated.
func Connect(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	return Open(ctx, cfg.DSN(), Pool{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
}

type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func Open(ctx context.Context, dsn string, pool Pool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().Int("max_open_conns", pool.MaxOpenConns).Msg("✅ Connected to database")
	return db, nil
}

// Models lists every table owned by the portal, parents before children.
func Models() []interface{} {
	return []interface{}{
		&directory.Department{},
		&directory.Organization{},
		&auth.User{},
		&auth.StudentProfile{},
		&auth.AdminProfile{},
		&event.EventOrganizer{},
		&event.Event{},
		&alumni.Profile{},
		&alumni.Career{},
		&event.Participation{},
		&donation.Donation{},
		&opportunity.Opportunity{},
		&mentorship.Request{},
		&mentorship.Mentorship{},
		&auditlog.AuditLog{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	log.Info().Msg("🔄 Running database migrations...")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info().Msg("✅ Database migrations completed")
	return nil
}
