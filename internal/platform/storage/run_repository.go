package storage

import (
	"context"

	"gorm.io/gorm"

	"echominds-server-go/internal/platform/errors"
)

// RunRepository persists pipeline run records.
type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) Save(ctx context.Context, record *PipelineRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "run.save", "failed to save run", err)
	}
	return nil
}

func (r *RunRepository) Update(ctx context.Context, record *PipelineRecord) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "run.update", "failed to update run", err)
	}
	return nil
}

// FindByID returns nil without error when the run does not exist.
func (r *RunRepository) FindByID(ctx context.Context, id string) (*PipelineRecord, error) {
	var record PipelineRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindStorage, "run.find_by_id", "failed to find run", err)
	}
	return &record, nil
}

// List returns the most recent runs, newest first.
func (r *RunRepository) List(ctx context.Context, limit int) ([]*PipelineRecord, error) {
	var records []*PipelineRecord
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, errors.Wrap(errors.KindStorage, "run.list", "failed to list runs", err)
	}
	return records, nil
}
