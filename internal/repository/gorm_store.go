package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/aebalz/mindful-journey/internal/model"
)

const insertBatchSize = 100

// GormLogStore keeps the collection in the mood_logs table. It still honours
// the whole-collection contract: Save replaces every row in one transaction.
type GormLogStore struct {
	DB *gorm.DB
}

// NewGormLogStore creates a GormLogStore on an open, migrated connection.
func NewGormLogStore(db *gorm.DB) *GormLogStore {
	return &GormLogStore{DB: db}
}

// Load returns every stored row. Row order is not significant.
func (s *GormLogStore) Load(ctx context.Context) ([]model.MoodLog, error) {
	var logs []model.MoodLog
	if err := s.DB.WithContext(ctx).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("load mood logs: %w", err)
	}
	if logs == nil {
		logs = []model.MoodLog{}
	}
	return logs, nil
}

// Save replaces the table contents with logs.
func (s *GormLogStore) Save(ctx context.Context, logs []model.MoodLog) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.MoodLog{}).Error; err != nil {
			return fmt.Errorf("clear mood logs: %w", err)
		}
		if len(logs) == 0 {
			return nil
		}
		rows := make([]model.MoodLog, len(logs))
		copy(rows, logs)
		if err := tx.CreateInBatches(&rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert mood logs: %w", err)
		}
		return nil
	})
	return err
}
