package anomalie

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// FiltresRecherche narrows a listing. Zero values mean "no filter"; the date
// range may be open-ended on either side.
type FiltresRecherche struct {
	EmployeID string
	DateDebut *time.Time
	DateFin   *time.Time
	Statut    StatutAnomalie
	Type      TypeEcart
	Gravite   Gravite
	Limit     int
	Offset    int
}

// Rechercher returns a page of anomalies plus the unpaginated total.
// Ordering is date descending, then creation time descending.
func Rechercher(db *gorm.DB, f FiltresRecherche) ([]Anomalie, int64, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	q := db.Model(&Anomalie{})
	if f.EmployeID != "" {
		q = q.Where("employe_id = ?", f.EmployeID)
	}
	if f.DateDebut != nil {
		q = q.Where("date >= ?", Jour(*f.DateDebut))
	}
	if f.DateFin != nil {
		q = q.Where("date <= ?", Jour(*f.DateFin))
	}
	if f.Statut != "" {
		q = q.Where("statut = ?", f.Statut)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Gravite != "" {
		q = q.Where("gravite = ?", f.Gravite)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count anomalies: %w", err)
	}

	var items []Anomalie
	err := q.
		Preload("Employe").
		Preload("Traiteur").
		Order("date DESC, created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list anomalies: %w", err)
	}

	return items, total, nil
}

// Periode selects the rolling stats window.
type Periode string

const (
	PeriodeJour    Periode = "jour"
	PeriodeSemaine Periode = "semaine"
	PeriodeMois    Periode = "mois"
)

// Normaliser falls back to semaine for empty or unrecognised values.
func (p Periode) Normaliser() Periode {
	switch p {
	case PeriodeJour, PeriodeSemaine, PeriodeMois:
		return p
	}
	return PeriodeSemaine
}

// Depuis returns the start of the window ending at now.
func (p Periode) Depuis(now time.Time) time.Time {
	switch p.Normaliser() {
	case PeriodeJour:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodeMois:
		return now.AddDate(0, -1, 0)
	}
	return now.AddDate(0, 0, -7)
}

type Statistiques struct {
	Total      int64            `json:"total"`
	EnAttente  int64            `json:"enAttente"`
	Validees   int64            `json:"validees"`
	Refusees   int64            `json:"refusees"`
	Corrigees  int64            `json:"corrigees"`
	ParType    map[string]int64 `json:"parType"`
	ParGravite map[string]int64 `json:"parGravite"`
}

// ResultatStats bundles the aggregate counts with the dashboard's recent
// anomalies widget.
type ResultatStats struct {
	Stats    Statistiques `json:"stats"`
	Recentes []Anomalie   `json:"anomaliesRecentes"`
	Periode  Periode      `json:"periode"`
}

type compteGroupe struct {
	Cle    string
	Nombre int64
}

// CalculerStatistiques aggregates anomalies created within the rolling
// window, optionally scoped to one employee.
func CalculerStatistiques(db *gorm.DB, employeID string, periode Periode, now time.Time) (*ResultatStats, error) {
	periode = periode.Normaliser()
	depuis := periode.Depuis(now)

	base := func() *gorm.DB {
		q := db.Model(&Anomalie{}).Where("created_at >= ?", depuis)
		if employeID != "" {
			q = q.Where("employe_id = ?", employeID)
		}
		return q
	}

	stats := Statistiques{
		ParType:    map[string]int64{},
		ParGravite: map[string]int64{},
	}

	var parStatut []compteGroupe
	if err := base().
		Select("statut AS cle, COUNT(*) AS nombre").
		Group("statut").
		Scan(&parStatut).Error; err != nil {
		return nil, fmt.Errorf("group by statut: %w", err)
	}
	for _, c := range parStatut {
		stats.Total += c.Nombre
		switch StatutAnomalie(c.Cle) {
		case StatutEnAttente:
			stats.EnAttente = c.Nombre
		case StatutValidee:
			stats.Validees = c.Nombre
		case StatutRefusee:
			stats.Refusees = c.Nombre
		case StatutCorrigee:
			stats.Corrigees = c.Nombre
		}
	}

	var parType []compteGroupe
	if err := base().
		Select("type AS cle, COUNT(*) AS nombre").
		Group("type").
		Scan(&parType).Error; err != nil {
		return nil, fmt.Errorf("group by type: %w", err)
	}
	for _, c := range parType {
		stats.ParType[c.Cle] = c.Nombre
	}

	var parGravite []compteGroupe
	if err := base().
		Select("gravite AS cle, COUNT(*) AS nombre").
		Group("gravite").
		Scan(&parGravite).Error; err != nil {
		return nil, fmt.Errorf("group by gravite: %w", err)
	}
	for _, c := range parGravite {
		stats.ParGravite[c.Cle] = c.Nombre
	}

	var recentes []Anomalie
	if err := base().
		Preload("Employe").
		Order("created_at DESC").
		Limit(5).
		Find(&recentes).Error; err != nil {
		return nil, fmt.Errorf("recent anomalies: %w", err)
	}

	return &ResultatStats{
		Stats:    stats,
		Recentes: recentes,
		Periode:  periode,
	}, nil
}
