package models

import "gorm.io/gorm"

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

type User struct {
	gorm.Model
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Store    string `json:"store"`
}

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
