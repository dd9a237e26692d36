package repository

import (
	"context"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"gorm.io/gorm"
)

// AppointmentRepository defines tenant-scoped appointment operations.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
}

// GormAppointmentRepository implements AppointmentRepository using GORM.
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewGormAppointmentRepository creates a new GORM appointment repository.
func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// Create books the appointment row; callers must have already won the
// slot via ScheduleRepository.Book in the same transaction so the two
// writes commit atomically (§3 invariant 8).
func (r *GormAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, wrapDBError("appointment", "", err)
	}
	return a, nil
}
