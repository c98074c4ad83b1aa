package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// RoomFilter defines filters for listing rooms.
type RoomFilter struct {
	SchoolID     *uint
	RoomType     string
	BookableOnly bool
}

// RoomRepository exposes persistence helpers for rooms.
type RoomRepository interface {
	List(ctx context.Context, filter RoomFilter) ([]models.Room, error)
	GetByID(ctx context.Context, id uint) (models.Room, error)
	ExistsByCode(ctx context.Context, schoolID uint, code string, excludeID uint) (bool, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Room, error)
	Deactivate(ctx context.Context, id uint) error
}

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository constructs a room repository.
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) List(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	query := r.db.WithContext(ctx).Where("status = ?", models.StatusActive)

	if filter.SchoolID != nil {
		query = query.Where("school_id = ?", *filter.SchoolID)
	}
	if filter.RoomType != "" {
		query = query.Where("room_type = ?", filter.RoomType)
	}
	if filter.BookableOnly {
		query = query.Where("is_bookable = ?", true)
	}

	var rooms []models.Room
	if err := query.Order("name").Find(&rooms).Error; err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *roomRepository) GetByID(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return models.Room{}, err
	}

	return room, nil
}

func (r *roomRepository) ExistsByCode(ctx context.Context, schoolID uint, code string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("school_id = ?", schoolID).
		Where("room_code = ?", code)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Room, error) {
	tx := r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id)
	if err := tx.Updates(updates).Error; err != nil {
		return models.Room{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *roomRepository) Deactivate(ctx context.Context, id uint) error {
	update := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", id).
		Where("status = ?", models.StatusActive).
		Update("status", models.StatusInactive)
	if update.Error != nil {
		return update.Error
	}
	if update.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
