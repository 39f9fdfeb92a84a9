package repository

import (
	"classroom_backend/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserDataRepository struct {
	DB *gorm.DB
}

func NewUserDataRepository(db *gorm.DB) *UserDataRepository {
	return &UserDataRepository{DB: db}
}

// FindByUserID 未找到时返回 gorm.ErrRecordNotFound
func (r *UserDataRepository) FindByUserID(ctx context.Context, userID string) (*model.UserData, error) {
	var data model.UserData
	err := r.DB.WithContext(ctx).First(&data, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// Upsert 整体覆盖, 后写者胜
func (r *UserDataRepository) Upsert(ctx context.Context, data *model.UserData) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"posts_json",
			"groups_json",
			"notifications_json",
			"chat_histories_json",
			"updated_at",
		}),
	}).Create(data).Error
}
