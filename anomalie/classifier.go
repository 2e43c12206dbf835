package anomalie

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

const (
	// Deviations under this many minutes are noise, whatever their type,
	// unless the type is unconditionally significant.
	SeuilMinutesPlancher = 5

	// Per-type significance thresholds, in absolute minutes.
	SeuilRetard         = 10
	SeuilDepartAnticipe = 10
	SeuilHeuresSup      = 30

	// Severity escalation points.
	SeuilCritiqueMinutes   = 30
	SeuilCritiqueHeuresSup = 2.0 // hours

	// TauxHoraireDefaut backs montantExtra when no rate is configured.
	TauxHoraireDefaut = 12.50
)

// EcartClassifie is an accepted deviation decorated with everything the
// reconciler needs to persist it.
type EcartClassifie struct {
	Type         TypeEcart
	Description  string
	Gravite      Gravite
	Details      datatypes.JSON
	HeuresExtra  *float64
	MontantExtra *float64
}

// estInconditionnel reports whether the type is significant irrespective of
// the minute threshold (absence/presence mismatches and out-of-hours work).
func estInconditionnel(t TypeEcart) bool {
	switch t {
	case TypeHorsPlage, TypeAbsenceTotale, TypePresenceNonPrevue, TypeAbsencePlanifieeAvecPointage:
		return true
	}
	return false
}

// EstSignificatif decides whether a deviation is worth recording at all.
func EstSignificatif(e Ecart) bool {
	if estInconditionnel(e.Type) {
		return true
	}

	minutes := minutesAbsolues(e)
	if e.EcartMinutes != nil && minutes < SeuilMinutesPlancher {
		return false
	}

	switch e.Type {
	case TypeRetard:
		return e.EcartMinutes != nil && minutes >= SeuilRetard
	case TypeDepartAnticipe:
		return e.EcartMinutes != nil && minutes >= SeuilDepartAnticipe
	case TypeHeuresSup:
		return e.EcartMinutes != nil && minutes >= SeuilHeuresSup
	}

	// Unknown types fail open so new deviation kinds are never silently
	// dropped before anyone looked at them.
	return true
}

// DetermineGravite grades an accepted deviation.
func DetermineGravite(e Ecart) Gravite {
	minutes := minutesAbsolues(e)

	switch e.Type {
	case TypeRetard:
		if minutes >= SeuilCritiqueMinutes {
			return GraviteCritique
		}
		if minutes >= SeuilRetard {
			return GraviteAttention
		}
		return GraviteInfo
	case TypeDepartAnticipe:
		if minutes >= SeuilCritiqueMinutes {
			return GraviteCritique
		}
		return GraviteAttention
	case TypeHorsPlage:
		return GraviteCritique
	case TypeHeuresSup:
		if float64(minutes)/60.0 >= SeuilCritiqueHeuresSup {
			return GraviteCritique
		}
		return GraviteAttention
	case TypeAbsenceTotale, TypePresenceNonPrevue, TypeAbsencePlanifieeAvecPointage:
		return GraviteCritique
	}

	return GraviteInfo
}

// Classifieur turns raw deviations into persistable anomalies. The overtime
// hourly rate is injected rather than hard-coded so payroll can tune it.
type Classifieur struct {
	TauxHoraire float64
}

func NewClassifieur(tauxHoraire float64) *Classifieur {
	if tauxHoraire <= 0 {
		tauxHoraire = TauxHoraireDefaut
	}
	return &Classifieur{TauxHoraire: tauxHoraire}
}

// Classifier filters and grades a batch of deviations. forceCreate bypasses
// the significance filter (operator-forced registration of borderline cases).
// A deviation with no type invalidates the whole batch: nothing is returned
// and nothing must be persisted.
func (c *Classifieur) Classifier(ecarts []Ecart, forceCreate bool) ([]EcartClassifie, error) {
	for i, e := range ecarts {
		if e.Type == "" {
			return nil, NewValidationError("ecart %d sans type", i)
		}
	}

	classifies := make([]EcartClassifie, 0, len(ecarts))
	for _, e := range ecarts {
		if !forceCreate && !EstSignificatif(e) {
			continue
		}

		ec := EcartClassifie{
			Type:        e.Type,
			Description: descriptionOuDefaut(e),
			Gravite:     DetermineGravite(e),
		}

		if e.Type == TypeHeuresSup && e.EcartMinutes != nil {
			heures := float64(minutesAbsolues(e)) / 60.0
			montant := heures * c.TauxHoraire
			ec.HeuresExtra = &heures
			ec.MontantExtra = &montant
		}

		details, err := json.Marshal(DetailsEcart{
			EcartMinutes:            e.EcartMinutes,
			HeurePrevu:              e.HeurePrevu,
			HeureReelle:             e.HeureReelle,
			Motif:                   e.Motif,
			OriginalDescription:     e.Description,
			RequiresAdminValidation: e.RequiresAdminValidation,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal details: %w", err)
		}
		ec.Details = datatypes.JSON(details)

		classifies = append(classifies, ec)
	}

	return classifies, nil
}

func descriptionOuDefaut(e Ecart) string {
	if e.Description != nil && *e.Description != "" {
		return *e.Description
	}
	return fmt.Sprintf("Anomalie de type %s", e.Type)
}

func minutesAbsolues(e Ecart) int {
	if e.EcartMinutes == nil {
		return 0
	}
	m := *e.EcartMinutes
	if m < 0 {
		return -m
	}
	return m
}
