// Package repository is the CQC's Entity Store: tenant-scoped, transactional
// access to tenants, leads, properties, knowledge, schedule slots and
// appointments over Postgres via GORM.
package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// RepositoryManager bundles one repository per entity plus transaction
// support, mirroring the teacher's GormRepositoryManager shape.
type RepositoryManager interface {
	Tenant() TenantRepository
	Lead() LeadRepository
	Property() PropertyRepository
	Knowledge() KnowledgeRepository
	Schedule() ScheduleRepository
	Appointment() AppointmentRepository
	Notification() NotificationRepository

	WithTx(ctx context.Context, fn func(ctx context.Context, repos RepositoryManager) error) error
	Ping(ctx context.Context) error
	Close() error
}

// GormRepositoryManager implements RepositoryManager using GORM.
type GormRepositoryManager struct {
	db           *gorm.DB
	tenantRepo   *GormTenantRepository
	leadRepo     *GormLeadRepository
	propertyRepo *GormPropertyRepository
	knowledgeRepo *GormKnowledgeRepository
	scheduleRepo *GormScheduleRepository
	appointRepo  *GormAppointmentRepository
	notifRepo    *GormNotificationRepository
}

// NewRepositoryManager opens a Postgres connection from DATABASE_URL (or
// the individual PG* environment variables) and returns a ready manager.
func NewRepositoryManager() (*GormRepositoryManager, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			envOrDefault("PGHOST", "localhost"),
			envOrDefault("PGPORT", "5432"),
			envOrDefault("PGUSER", "cqc"),
			envOrDefault("PGPASSWORD", ""),
			envOrDefault("PGDATABASE", "cqc"),
			envOrDefault("PGSSLMODE", "disable"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(logger.NewGORMWriter(), gormlogger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      gormlogger.Warn,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return NewGormRepositoryManager(db), nil
}

// NewGormRepositoryManager wraps an already-open *gorm.DB.
func NewGormRepositoryManager(db *gorm.DB) *GormRepositoryManager {
	return &GormRepositoryManager{
		db:            db,
		tenantRepo:    NewGormTenantRepository(db),
		leadRepo:      NewGormLeadRepository(db),
		propertyRepo:  NewGormPropertyRepository(db),
		knowledgeRepo: NewGormKnowledgeRepository(db),
		scheduleRepo:  NewGormScheduleRepository(db),
		appointRepo:   NewGormAppointmentRepository(db),
		notifRepo:     NewGormNotificationRepository(db),
	}
}

func (m *GormRepositoryManager) Tenant() TenantRepository           { return m.tenantRepo }
func (m *GormRepositoryManager) Lead() LeadRepository               { return m.leadRepo }
func (m *GormRepositoryManager) Property() PropertyRepository       { return m.propertyRepo }
func (m *GormRepositoryManager) Knowledge() KnowledgeRepository     { return m.knowledgeRepo }
func (m *GormRepositoryManager) Schedule() ScheduleRepository       { return m.scheduleRepo }
func (m *GormRepositoryManager) Appointment() AppointmentRepository { return m.appointRepo }
func (m *GormRepositoryManager) Notification() NotificationRepository { return m.notifRepo }

// WithTx executes fn within a Postgres transaction at READ COMMITTED (the
// driver default), satisfying invariant "mutation requires transactions
// with at least READ COMMITTED isolation" (§5).
func (m *GormRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos RepositoryManager) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewGormRepositoryManager(tx))
	})
}

// Ping checks the database connection.
func (m *GormRepositoryManager) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func (m *GormRepositoryManager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// wrapDBError classifies a GORM error into the CQC error taxonomy (§7).
func wrapDBError(resource, id string, err error) error {
	if err == nil {
		return nil
	}
	if err == gorm.ErrRecordNotFound {
		return &domain.ErrNotFound{Resource: resource, ID: id}
	}
	return &domain.ErrFatalDependency{Dependency: "postgres", Err: err}
}
