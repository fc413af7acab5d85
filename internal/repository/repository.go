// Package repository is the data-access layer. Every appointment and task
// query passes through the ownedBy scope, so a row can never be read or
// mutated outside its owner's requests regardless of what a handler asks
// for.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agendafacil/agenda-api/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type AppointmentRepository interface {
	// List returns the owner's appointments, optionally restricted to one
	// exact date, ordered ascending by (date, time). date == "" disables
	// the filter.
	List(ctx context.Context, userID, date string) ([]models.Appointment, error)
	Get(ctx context.Context, userID, id string) (*models.Appointment, error)
	Create(ctx context.Context, ap *models.Appointment) error
	Save(ctx context.Context, ap *models.Appointment) error
	Delete(ctx context.Context, userID, id string) error
}

type TaskRepository interface {
	// List applies the status and priority filters independently (AND)
	// and orders newest first. "" disables a filter.
	List(ctx context.Context, userID, status, priority string) ([]models.Task, error)
	Get(ctx context.Context, userID, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Save(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, userID, id string) error
}

// ownedBy is the mandatory ownership predicate.
func ownedBy(userID string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id = ?", userID)
	}
}
