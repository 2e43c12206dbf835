package core

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Employe is the read-only slice of the employee directory this service
// joins onto anomaly records. The directory itself is owned elsewhere.
type Employe struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Nom       string    `gorm:"size:100" json:"nom"`
	Prenom    string    `gorm:"size:100" json:"prenom"`
	Email     *string   `gorm:"size:191;index" json:"email,omitempty"`
	Categorie *string   `gorm:"size:50" json:"categorie,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Employe) TableName() string {
	return "employes"
}

func FindEmployeByID(db *gorm.DB, id string) (*Employe, error) {
	var emp Employe
	result := db.First(&emp, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &emp, nil
}
