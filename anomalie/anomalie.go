package anomalie

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gestirh.com/gestirh/core"
)

// TypeEcart identifies the kind of planned-vs-actual discrepancy.
type TypeEcart string

const (
	TypeRetard                       TypeEcart = "retard"
	TypeHorsPlage                    TypeEcart = "hors_plage"
	TypeAbsenceTotale                TypeEcart = "absence_totale"
	TypePresenceNonPrevue            TypeEcart = "presence_non_prevue"
	TypeDepartAnticipe               TypeEcart = "depart_anticipe"
	TypeHeuresSup                    TypeEcart = "heures_sup"
	TypeAbsencePlanifieeAvecPointage TypeEcart = "absence_planifiee_avec_pointage"
)

type Gravite string

const (
	GraviteCritique  Gravite = "critique"
	GraviteAttention Gravite = "attention"
	GraviteInfo      Gravite = "info"
)

type StatutAnomalie string

const (
	StatutEnAttente StatutAnomalie = "en_attente"
	StatutValidee   StatutAnomalie = "validee"
	StatutRefusee   StatutAnomalie = "refusee"
	StatutCorrigee  StatutAnomalie = "corrigee"
)

// Ecart is a transient candidate discrepancy produced by the planning
// comparison process. It is never persisted as-is.
type Ecart struct {
	Type                    TypeEcart `json:"type"`
	EcartMinutes            *int      `json:"ecartMinutes"`
	HeurePrevu              *string   `json:"heurePrevu"`
	HeureReelle             *string   `json:"heureReelle"`
	Motif                   *string   `json:"motif"`
	Description             *string   `json:"description"`
	RequiresAdminValidation bool      `json:"requiresAdminValidation"`
}

// DetailsEcart is the audit snapshot stored alongside each anomaly so the
// originating deviation survives later rule changes.
type DetailsEcart struct {
	EcartMinutes            *int    `json:"ecartMinutes"`
	HeurePrevu              *string `json:"heurePrevu"`
	HeureReelle             *string `json:"heureReelle"`
	Motif                   *string `json:"motif"`
	OriginalDescription     *string `json:"originalDescription"`
	RequiresAdminValidation bool    `json:"requiresAdminValidation"`
}

// Anomalie is the durable record created from an accepted Ecart.
//
// The composite unique index on (employe_id, date, type, description) is the
// natural identity the reconciler upserts on; the database enforces it under
// concurrent sync calls.
type Anomalie struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	EmployeID   string         `gorm:"size:36;not null;uniqueIndex:idx_anomalie_identite,priority:1" json:"employeId"`
	Date        time.Time      `gorm:"not null;index;uniqueIndex:idx_anomalie_identite,priority:2" json:"date"`
	Type        TypeEcart      `gorm:"size:64;not null;uniqueIndex:idx_anomalie_identite,priority:3" json:"type"`
	Description string         `gorm:"size:191;not null;uniqueIndex:idx_anomalie_identite,priority:4" json:"description"`
	Gravite     Gravite        `gorm:"size:16;not null" json:"gravite"`
	Details     datatypes.JSON `json:"details,omitempty"`

	// Populated for heures_sup anomalies only.
	HeuresExtra  *float64 `gorm:"type:decimal(10,2)" json:"heuresExtra,omitempty"`
	MontantExtra *float64 `gorm:"type:decimal(10,2)" json:"montantExtra,omitempty"`

	Statut      StatutAnomalie `gorm:"size:16;not null;default:en_attente;index" json:"statut"`
	Commentaire *string        `gorm:"size:500" json:"commentaire,omitempty"`
	TraiteParID *string        `gorm:"size:36" json:"traiteParId,omitempty"`
	TraiteAt    *time.Time     `json:"traiteAt,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Employe  *core.Employe     `gorm:"foreignKey:EmployeID" json:"employe,omitempty"`
	Traiteur *core.Utilisateur `gorm:"foreignKey:TraiteParID" json:"traiteur,omitempty"`
}

func (Anomalie) TableName() string {
	return "anomalies"
}

func (a *Anomalie) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// EstEnAttente reports whether the anomaly can still be refreshed or treated.
func (a *Anomalie) EstEnAttente() bool {
	return a.Statut == StatutEnAttente
}

// Jour normalises a calendar day to midnight UTC, the canonical form dates
// are stored in.
func Jour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
