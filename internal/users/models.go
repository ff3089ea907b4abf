package users

import "time"

type User struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	Email     string    `gorm:"not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string { return "app_tasknest.users" }
