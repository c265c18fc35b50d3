package entities

import "time"

// User is a library member. Email is unique as stored (case-sensitive).
type User struct {
	ID           uint      `gorm:"column:id;primaryKey" json:"id"`
	Name         string    `gorm:"column:nome" json:"name"`
	Email        string    `gorm:"column:email" json:"email"`
	PasswordHash string    `gorm:"column:senha_hash" json:"-"`
	RegisteredAt time.Time `gorm:"column:data_criacao;->" json:"registered_at"`
	ModifiedAt   time.Time `gorm:"column:data_modificacao;->" json:"modified_at"`
}

func (User) TableName() string { return "usuario" }

// UserSummary is the projection returned by listings (friends, user lists).
type UserSummary struct {
	ID    uint   `gorm:"column:id" json:"id"`
	Name  string `gorm:"column:nome" json:"name"`
	Email string `gorm:"column:email" json:"email"`
}

// UserUpdate carries the profile fields to change. Empty fields are left as they are.
type UserUpdate struct {
	Name         string
	Email        string
	PasswordHash string
}

// IsEmpty reports whether the update touches no column.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == "" && u.Email == "" && u.PasswordHash == ""
}
