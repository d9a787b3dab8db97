package repository

import (
	"errors"
	"time"

	"github.com/sefazor/tournest-backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	crud[models.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{crud: crud[models.User]{db: db}}
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertOnLogin inserts the user when the email is unknown, otherwise only refreshes last_log_in.
// The lookup and the write are separate statements.
func (r *UserRepository) UpsertOnLogin(user *models.User, now time.Time) (created bool, updated bool, err error) {
	existing, err := r.GetByEmail(user.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user.LastLogIn = now
		if err := r.db.Create(user).Error; err != nil {
			return false, false, err
		}
		return true, false, nil
	}
	if err != nil {
		return false, false, err
	}

	result := r.db.Model(&models.User{}).Where("id = ?", existing.ID).Update("last_log_in", now)
	if result.Error != nil {
		return false, false, result.Error
	}
	*user = *existing
	user.LastLogIn = now
	return false, result.RowsAffected > 0, nil
}

func (r *UserRepository) UpdateByEmail(email string, fields map[string]interface{}) (int64, error) {
	return r.UpdateFields(map[string]interface{}{"email": email}, fields)
}

func (r *UserRepository) CountByRole() (map[models.Role]int, error) {
	var rows []struct {
		Role  models.Role
		Count int
	}
	err := r.db.Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Role]int, len(models.AllRoles))
	for _, role := range models.AllRoles {
		counts[role] = 0
	}
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}

func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
