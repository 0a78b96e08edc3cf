package models

import (
	"gorm.io/gorm"
)

// GetUserByEmail retrieves a user from the database by email
func GetUserByEmail(email string, db *gorm.DB) (*User, error) {
	user := &User{}
	if err := db.Where("email = ?", email).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetVoucherByCode retrieves an owned voucher by its public code
func GetVoucherByCode(code string, userID string, db *gorm.DB) (*Voucher, error) {
	voucher := &Voucher{}
	if err := db.Where("code = ? AND user_id = ?", code, userID).First(voucher).Error; err != nil {
		return nil, err
	}
	return voucher, nil
}
