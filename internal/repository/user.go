package repository

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yalex-kim/timing-trainer/internal/database"
	"github.com/yalex-kim/timing-trainer/internal/models"
)

func CreateUser(email, password, firstName, lastName string, birthDate time.Time, gender string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: firstName,
		LastName:  lastName,
		BirthDate: birthDate,
		Gender:    gender,
	}
	result := database.DB.Create(user)
	return user, result.Error
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, "email = ?", email)
	return &user, result.Error
}

func GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, id)
	return &user, result.Error
}

func UpdateUser(ctx context.Context, userID uint, firstName, lastName string, birthDate time.Time, gender string) error {
	return database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"first_name": firstName,
		"last_name":  lastName,
		"birth_date": birthDate,
		"gender":     gender,
	}).Error
}

func UpdateUserPassword(ctx context.Context, userID uint, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password", string(hashedPassword)).Error
}

func DeleteUser(ctx context.Context, userID uint) error {
	return database.DB.WithContext(ctx).Delete(&models.User{}, userID).Error
}
