package entity

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	Base
	Name            string     `db:"name"`
	Email           string     `db:"email"`
	Phone           string     `db:"phone"`
	PasswordHash    string     `db:"password"`
	Role            UserRole   `db:"role"`
	IsVerified      bool       `db:"is_verified"`
	OTP             *string    `db:"otp"`
	OTPExpiresAt    *time.Time `db:"otp_expires_at"`
	ShippingAddress Address
}

// OTPMatches reports whether code is the stored code and now is strictly before its expiry.
func (u *User) OTPMatches(code string, now time.Time) bool {
	if u.OTP == nil || u.OTPExpiresAt == nil {
		return false
	}
	return *u.OTP == code && now.Before(*u.OTPExpiresAt)
}
