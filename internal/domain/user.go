package domain

import "time"

// Role роль пользователя
type Role string

const (
	RoleCustomer Role = "usuario"
	RoleAdmin    Role = "admin"
)

// User пользователь (клиент или владелец бизнеса)
type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	BusinessName *string
	BusinessCode *string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// FullName имя и фамилия
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
