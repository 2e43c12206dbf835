package anomalie

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ActionTraitement string

const (
	ActionValider  ActionTraitement = "valider"
	ActionRefuser  ActionTraitement = "refuser"
	ActionCorriger ActionTraitement = "corriger"
)

// StatutCible maps a treatment action to the status it produces.
func (a ActionTraitement) StatutCible() (StatutAnomalie, bool) {
	switch a {
	case ActionValider:
		return StatutValidee, true
	case ActionRefuser:
		return StatutRefusee, true
	case ActionCorriger:
		return StatutCorrigee, true
	}
	return "", false
}

// Reconcile upserts classified deviations for one employee and day.
//
// Identity is (employe_id, date, type, description). Pending rows are
// refreshed in place; resolved rows are immutable history and are left out
// of the result. The whole batch runs in one transaction, and a create that
// loses a concurrent-insert race falls back to the update path.
func Reconcile(db *gorm.DB, employeID string, date time.Time, ecarts []EcartClassifie) ([]Anomalie, error) {
	jour := Jour(date)
	result := make([]Anomalie, 0, len(ecarts))

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, ec := range ecarts {
			a, err := reconcileUn(tx, employeID, jour, ec)
			if err != nil {
				return err
			}
			if a != nil {
				result = append(result, *a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// reconcileUn handles a single deviation. Returns nil when the existing
// anomaly is already resolved (frozen).
func reconcileUn(tx *gorm.DB, employeID string, jour time.Time, ec EcartClassifie) (*Anomalie, error) {
	existante, err := chercherParIdentite(tx, employeID, jour, ec)
	if err != nil {
		return nil, err
	}

	if existante == nil {
		nouvelle := Anomalie{
			EmployeID:    employeID,
			Date:         jour,
			Type:         ec.Type,
			Description:  ec.Description,
			Gravite:      ec.Gravite,
			Details:      ec.Details,
			HeuresExtra:  ec.HeuresExtra,
			MontantExtra: ec.MontantExtra,
			Statut:       StatutEnAttente,
		}
		err := tx.Create(&nouvelle).Error
		if err == nil {
			return &nouvelle, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create anomalie: %w", err)
		}
		// Lost a concurrent-insert race on the identity key; re-read and
		// fall through to the update path.
		existante, err = chercherParIdentite(tx, employeID, jour, ec)
		if err != nil {
			return nil, err
		}
		if existante == nil {
			return nil, fmt.Errorf("anomalie disparue apres conflit d'unicite")
		}
	}

	if !existante.EstEnAttente() {
		return nil, nil
	}

	maj := map[string]interface{}{
		"gravite":       ec.Gravite,
		"details":       ec.Details,
		"heures_extra":  ec.HeuresExtra,
		"montant_extra": ec.MontantExtra,
	}
	if err := tx.Model(existante).Updates(maj).Error; err != nil {
		return nil, fmt.Errorf("refresh anomalie %s: %w", existante.ID, err)
	}

	return existante, nil
}

func chercherParIdentite(tx *gorm.DB, employeID string, jour time.Time, ec EcartClassifie) (*Anomalie, error) {
	var a Anomalie
	err := tx.
		Where("employe_id = ? AND date = ? AND type = ? AND description = ?",
			employeID, jour, ec.Type, ec.Description).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup anomalie: %w", err)
	}
	return &a, nil
}

// DemandeTraitement carries an admin decision on a pending anomaly.
type DemandeTraitement struct {
	Action      ActionTraitement
	Commentaire *string

	// Optional overrides, honoured on valider for heures_sup anomalies
	// (a manager adjusting the computed overtime pay).
	MontantExtra *float64
	HeuresExtra  *float64
}

// Traiter closes a pending anomaly. The status guard is re-checked inside
// the update itself, so a concurrent treatment loses cleanly with an
// EtatInvalideError instead of silently overwriting the first decision.
func Traiter(db *gorm.DB, id string, demande DemandeTraitement, acteurID string) (*Anomalie, error) {
	statutCible, ok := demande.Action.StatutCible()
	if !ok {
		return nil, NewValidationError("action invalide: %s (attendu valider, refuser ou corriger)", demande.Action)
	}

	var traitee Anomalie
	err := db.Transaction(func(tx *gorm.DB) error {
		var a Anomalie
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAnomalieIntrouvable
			}
			return fmt.Errorf("lookup anomalie: %w", err)
		}

		if !a.EstEnAttente() {
			return &EtatInvalideError{Statut: a.Statut}
		}

		now := time.Now()
		maj := map[string]interface{}{
			"statut":        statutCible,
			"commentaire":   demande.Commentaire,
			"traite_par_id": acteurID,
			"traite_at":     now,
		}
		if demande.Action == ActionValider && a.Type == TypeHeuresSup {
			if demande.MontantExtra != nil {
				maj["montant_extra"] = demande.MontantExtra
			}
			if demande.HeuresExtra != nil {
				maj["heures_extra"] = demande.HeuresExtra
			}
		}

		res := tx.Model(&Anomalie{}).
			Where("id = ? AND statut = ?", id, StatutEnAttente).
			Updates(maj)
		if res.Error != nil {
			return fmt.Errorf("update anomalie %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			// Another actor treated it between our read and write.
			if err := tx.First(&a, "id = ?", id).Error; err != nil {
				return fmt.Errorf("reload anomalie %s: %w", id, err)
			}
			return &EtatInvalideError{Statut: a.Statut}
		}

		return tx.Preload("Employe").Preload("Traiteur").First(&traitee, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}

	return &traitee, nil
}
