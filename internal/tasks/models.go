package tasks

import "time"

// Known category values. The create/update handlers accept any non-empty
// string; these are the values the frontend's category picker offers.
const (
	CategoryWork     = "Work"
	CategoryPersonal = "Personal"
	CategoryUrgent   = "Urgent"
)

type Task struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	DueDate   time.Time `gorm:"not null" json:"dueDate"`
	Category  string    `gorm:"not null" json:"category"`
	UserID    string    `gorm:"not null;index" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Task) TableName() string { return "app_tasknest.tasks" }
