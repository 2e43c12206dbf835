package core

import "time"

// Utilisateur is an application account. Its role claim feeds the
// authorization gate; treated anomalies reference it as traiteur.
type Utilisateur struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"size:191;uniqueIndex" json:"email"`
	Nom       string    `gorm:"size:100" json:"nom"`
	Role      string    `gorm:"size:20;not null;default:employe" json:"role"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Utilisateur) TableName() string {
	return "utilisateurs"
}
