package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"caltrack/internal/model"
)

// EntryFilter narrows and paginates entry listings. A non-nil OwnerID pins the
// query to that owner's rows (the own-only scope); Username and Food match
// case-insensitive substrings against the owner's name and the entry text.
type EntryFilter struct {
	OwnerID  *uuid.UUID
	Username string
	Food     string
	Page     int
	PerPage  int
}

// EntryRepository defines entry persistence operations.
type EntryRepository interface {
	Create(ctx context.Context, entry *model.Entry) error
	Update(ctx context.Context, entry *model.Entry) error
	// UpdateCalories persists a resolved calorie value without touching other
	// columns; lazy backfill on the read path goes through here.
	UpdateCalories(ctx context.Context, id uuid.UUID, calories int) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Entry, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter EntryFilter) ([]model.Entry, int64, error)
	// SumCaloriesForDay totals the resolved calories of one owner's entries on
	// one date. Unresolved (null) rows contribute nothing.
	SumCaloriesForDay(ctx context.Context, ownerID uuid.UUID, date string) (int64, error)
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository builds a GORM-backed repository.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Create(ctx context.Context, entry *model.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *entryRepository) Update(ctx context.Context, entry *model.Entry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *entryRepository) UpdateCalories(ctx context.Context, id uuid.UUID, calories int) error {
	return r.db.WithContext(ctx).Model(&model.Entry{}).
		Where("id = ?", id).
		Update("calories", calories).Error
}

func (r *entryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Entry, error) {
	var entry model.Entry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Entry, error) {
	var entry model.Entry
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Entry{}).Error
}

func (r *entryRepository) List(ctx context.Context, filter EntryFilter) ([]model.Entry, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Entry{})
	if filter.OwnerID != nil {
		query = query.Where("entries.user_id = ?", *filter.OwnerID)
	}
	if filter.Username != "" {
		query = query.Joins("JOIN users ON users.id = entries.user_id").
			Where("LOWER(users.name) LIKE ?", contains(filter.Username))
	}
	if filter.Food != "" {
		query = query.Where("LOWER(entries.text) LIKE ?", contains(filter.Food))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.Entry
	if err := query.Offset((filter.Page - 1) * filter.PerPage).Limit(filter.PerPage).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *entryRepository) SumCaloriesForDay(ctx context.Context, ownerID uuid.UUID, date string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Entry{}).
		Where("user_id = ? AND date = ?", ownerID, date).
		Select("COALESCE(SUM(calories), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
