package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/meetclone/internal/models"
	"time"
)

func (d *Database) SaveUser(user *models.User) error {
	if err := d.db.Create(user).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (d *Database) UpdateUser(user *models.User) error {
	return d.db.Save(user).Error
}

func (d *Database) GetUser(id uuid.UUID) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail expects an already-normalized (lowercase) address;
// emails are stored lowercase so the lookup stays case-insensitive.
func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByUsername(username string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("username = ?", username).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (d *Database) EmailExists(email string) (bool, error) {
	var count int64
	err := d.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (d *Database) UsernameExists(username string) (bool, error) {
	var count int64
	err := d.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (d *Database) UpdateLastLogin(id uuid.UUID) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Update("last_login", time.Now()).Error
}

func (d *Database) UpdatePassword(id uuid.UUID, passwordHash string) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", passwordHash).Error
}
