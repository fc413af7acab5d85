package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/agendafacil/agenda-api/internal/apperr"
	"github.com/agendafacil/agenda-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) List(
	ctx context.Context,
	userID string,
	date string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Scopes(ownedBy(userID))
	if date != "" {
		q = q.Where("date = ?", date)
	}

	aps := make([]models.Appointment, 0)
	if err := q.Order("date ASC, time ASC").Find(&aps).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return aps, nil
}

func (r *AppointmentGormRepository) Get(
	ctx context.Context,
	userID string,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Scopes(ownedBy(userID)).
		First(&ap, "id = ?", id).Error; err != nil {

		// absent and foreign-owned are indistinguishable to the caller
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("appointment not found")
		}
		return nil, apperr.Internal(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) Create(ctx context.Context, ap *models.Appointment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(ap).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (r *AppointmentGormRepository) Save(ctx context.Context, ap *models.Appointment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(ap).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (r *AppointmentGormRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Scopes(ownedBy(userID)).Delete(&models.Appointment{}, "id = ?", id)
		if res.Error != nil {
			return apperr.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("appointment not found")
		}
		return nil
	})
}

// Compile-time check
var _ AppointmentRepository = (*AppointmentGormRepository)(nil)
