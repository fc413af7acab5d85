package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/agendafacil/agenda-api/internal/apperr"
	"github.com/agendafacil/agenda-api/internal/models"
)

type TaskGormRepository struct {
	db *gorm.DB
}

func NewTaskGormRepository(db *gorm.DB) *TaskGormRepository {
	return &TaskGormRepository{db: db}
}

func (r *TaskGormRepository) List(
	ctx context.Context,
	userID string,
	status string,
	priority string,
) ([]models.Task, error) {

	q := r.db.WithContext(ctx).Scopes(ownedBy(userID))
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if priority != "" {
		q = q.Where("priority = ?", priority)
	}

	tasks := make([]models.Task, 0)
	if err := q.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return tasks, nil
}

func (r *TaskGormRepository) Get(ctx context.Context, userID, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).
		Scopes(ownedBy(userID)).
		First(&task, "id = ?", id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("task not found")
		}
		return nil, apperr.Internal(err)
	}
	return &task, nil
}

func (r *TaskGormRepository) Create(ctx context.Context, task *models.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(task).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (r *TaskGormRepository) Save(ctx context.Context, task *models.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(task).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (r *TaskGormRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Scopes(ownedBy(userID)).Delete(&models.Task{}, "id = ?", id)
		if res.Error != nil {
			return apperr.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("task not found")
		}
		return nil
	})
}

// Compile-time check
var _ TaskRepository = (*TaskGormRepository)(nil)
