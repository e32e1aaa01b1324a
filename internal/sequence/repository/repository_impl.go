package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mazisel/umzug/internal/sequence/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindCounter(ctx context.Context, db *gorm.DB, name string) (*domain.Counter, error) {
	var c domain.Counter
	err := db.WithContext(ctx).Raw(
		`SELECT name, last_value, updated_at FROM sequence_counters WHERE name = ?`,
		name,
	).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.Name == "" {
		return nil, nil
	}
	return &c, nil
}

func (r *repo) InsertCounter(ctx context.Context, db *gorm.DB, counter *domain.Counter) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO sequence_counters (name, last_value, updated_at) VALUES (?, ?, ?)`,
		counter.Name,
		counter.LastValue,
		counter.UpdatedAt,
	).Error
}

func (r *repo) CompareAndSwap(ctx context.Context, db *gorm.DB, name string, oldValue, newValue int64) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE sequence_counters SET last_value = ?, updated_at = ? WHERE name = ? AND last_value = ?`,
		newValue,
		time.Now().UTC(),
		name,
		oldValue,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) MaxAssigned(ctx context.Context, db *gorm.DB, d domain.Domain) (string, error) {
	var value string
	// Table and column come from the fixed domain registry, never from input.
	query := fmt.Sprintf(
		`SELECT %s FROM %s ORDER BY %s DESC LIMIT 1`,
		d.Column, d.Table, d.Column,
	)
	err := db.WithContext(ctx).Raw(query).Scan(&value).Error
	if err != nil {
		return "", err
	}
	return value, nil
}
