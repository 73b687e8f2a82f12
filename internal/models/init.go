package models

import (
	"strings"

	"github.com/storefront-api/internal/constants"
	"github.com/storefront-api/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const defaultStaffPassword = "staff12345"

// InitDefaultStaff 初始化默认店员账号，返回店员用户
func InitDefaultStaff(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = "staff@example.com"
	}

	var existing User
	result := DB.Where("is_staff = ?", true).Order("id asc").Limit(1).Find(&existing)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		return &existing, nil
	}

	if password == "" {
		password = defaultStaffPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	staff := User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "staff",
		IsStaff:      true,
		Status:       constants.UserStatusActive,
	}
	if err := DB.Create(&staff).Error; err != nil {
		return nil, err
	}

	if password == defaultStaffPassword {
		logger.Warnw("default_staff_created_with_default_password", "email", email, "password", password)
		logger.Warnw("default_staff_password_change_required", "email", email)
	} else {
		logger.Warnw("default_staff_created", "email", email, "password_hidden", true)
	}
	return &staff, nil
}
