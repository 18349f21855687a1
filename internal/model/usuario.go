package model

import "time"

const (
	RolSuper  = "SUPER"
	RolEditor = "EDITOR"
)

// Usuario stores system users with role-based access.
// Role: "SUPER" | "EDITOR"
type Usuario struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	LastName string `gorm:"not null"`
	// Email is stored lowercased
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"` // bcrypt hash
	Cedula   string `gorm:"uniqueIndex;not null"`
	Role     string `gorm:"type:varchar(20);not null"`
	// Estado false blocks login and token verification
	Estado    bool `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Usuario) TableName() string { return "usuarios" }
