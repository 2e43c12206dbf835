package anomalie

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gestirh.com/gestirh/core"
	"gestirh.com/gestirh/utils"
)

func seedAnomalies(t *testing.T, db *gorm.DB, emp core.Employe, n int, jour time.Time) []Anomalie {
	t.Helper()

	created := make([]Anomalie, 0, n)
	for i := 0; i < n; i++ {
		ecarts := classifie(t, Ecart{
			Type:         TypeRetard,
			EcartMinutes: utils.Ptr(15),
			Description:  utils.Ptr(fmt.Sprintf("Retard pointage %d", i)),
		})
		batch, err := Reconcile(db, emp.ID, jour.AddDate(0, 0, -i%3), ecarts)
		require.NoError(t, err)
		created = append(created, batch...)
	}
	return created
}

func TestRechercherPagination(t *testing.T) {
	db := setupDB(t)
	emp := seedEmploye(t, db)
	seedAnomalies(t, db, emp, 12, jourTest)

	page2, total, err := Rechercher(db, FiltresRecherche{EmployeID: emp.ID, Limit: 5, Offset: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	assert.Len(t, page2, 5)

	page3, total, err := Rechercher(db, FiltresRecherche{EmployeID: emp.ID, Limit: 5, Offset: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	assert.Len(t, page3, 2)
}

func TestRechercherOrdonneParDateDecroissante(t *testing.T) {
	db := setupDB(t)
	emp := seedEmploye(t, db)
	seedAnomalies(t, db, emp, 6, jourTest)

	items, _, err := Rechercher(db, FiltresRecherche{EmployeID: emp.ID})
	require.NoError(t, err)
	require.NotEmpty(t, items)

	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].Date.After(items[i-1].Date),
			"items must be ordered by date descending")
	}
}

func TestRechercherFiltres(t *testing.T) {
	db := setupDB(t)
	emp := seedEmploye(t, db)
	autre := seedEmploye(t, db)

	_, err := Reconcile(db, emp.ID, jourTest,
		classifie(t, Ecart{Type: TypeRetard, EcartMinutes: utils.Ptr(45)}))
	require.NoError(t, err)
	_, err = Reconcile(db, emp.ID, jourTest.AddDate(0, 0, -10),
		classifie(t, Ecart{Type: TypeHeuresSup, EcartMinutes: utils.Ptr(90)}))
	require.NoError(t, err)
	_, err = Reconcile(db, autre.ID, jourTest,
		classifie(t, Ecart{Type: TypeAbsenceTotale}))
	require.NoError(t, err)

	parEmploye, _, err := Rechercher(db, FiltresRecherche{EmployeID: emp.ID})
	require.NoError(t, err)
	assert.Len(t, parEmploye, 2)

	parType, _, err := Rechercher(db, FiltresRecherche{Type: TypeHeuresSup})
	require.NoError(t, err)
	assert.Len(t, parType, 1)

	parGravite, _, err := Rechercher(db, FiltresRecherche{Gravite: GraviteCritique})
	require.NoError(t, err)
	assert.Len(t, parGravite, 2) // retard 45m + absence totale

	debut := jourTest.AddDate(0, 0, -5)
	ouverte, _, err := Rechercher(db, FiltresRecherche{DateDebut: &debut})
	require.NoError(t, err)
	assert.Len(t, ouverte, 2)

	fin := jourTest.AddDate(0, 0, -5)
	fermee, _, err := Rechercher(db, FiltresRecherche{DateFin: &fin})
	require.NoError(t, err)
	assert.Len(t, fermee, 1)

	parStatut, _, err := Rechercher(db, FiltresRecherche{Statut: StatutEnAttente})
	require.NoError(t, err)
	assert.Len(t, parStatut, 3)
}

func TestRechercherPrechargeEmploye(t *testing.T) {
	db := setupDB(t)
	emp := seedEmploye(t, db)
	seedAnomalies(t, db, emp, 1, jourTest)

	items, _, err := Rechercher(db, FiltresRecherche{EmployeID: emp.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Employe)
	assert.Equal(t, "Martin", items[0].Employe.Nom)
}

func TestPeriodeNormaliser(t *testing.T) {
	assert.Equal(t, PeriodeJour, PeriodeJour.Normaliser())
	assert.Equal(t, PeriodeSemaine, Periode("").Normaliser())
	assert.Equal(t, PeriodeSemaine, Periode("annee").Normaliser())
	assert.Equal(t, PeriodeMois, PeriodeMois.Normaliser())
}

func TestPeriodeDepuis(t *testing.T) {
	now := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), PeriodeJour.Depuis(now))
	assert.Equal(t, now.AddDate(0, 0, -7), PeriodeSemaine.Depuis(now))
	assert.Equal(t, now.AddDate(0, -1, 0), PeriodeMois.Depuis(now))
}

func TestCalculerStatistiques(t *testing.T) {
	db := setupDB(t)
	emp := seedEmploye(t, db)
	manager := seedManager(t, db)

	// 2 pending (critique, attention) + 1 validated (critique), all recent.
	_, err := Reconcile(db, emp.ID, jourTest,
		classifie(t, Ecart{Type: TypeAbsenceTotale}))
	require.NoError(t, err)
	_, err = Reconcile(db, emp.ID, jourTest,
		classifie(t, Ecart{Type: TypeRetard, EcartMinutes: utils.Ptr(15)}))
	require.NoError(t, err)
	validee, err := Reconcile(db, emp.ID, jourTest,
		classifie(t, Ecart{Type: TypeHorsPlage}))
	require.NoError(t, err)
	require.Len(t, validee, 1)
	_, err = Traiter(db, validee[0].ID, DemandeTraitement{Action: ActionValider}, manager.ID)
	require.NoError(t, err)

	res, err := CalculerStatistiques(db, emp.ID, PeriodeSemaine, time.Now())
	require.NoError(t, err)

	assert.EqualValues(t, 3, res.Stats.Total)
	assert.EqualValues(t, 2, res.Stats.EnAttente)
	assert.EqualValues(t, 1, res.Stats.Validees)
	assert.EqualValues(t, 0, res.Stats.Refusees)
	assert.EqualValues(t, 0, res.Stats.Corrigees)

	assert.EqualValues(t, 2, res.Stats.ParGravite[string(GraviteCritique)])
	assert.EqualValues(t, 1, res.Stats.ParGravite[string(GraviteAttention)])

	assert.EqualValues(t, 1, res.Stats.ParType[string(TypeAbsenceTotale)])
	assert.EqualValues(t, 1, res.Stats.ParType[string(TypeRetard)])
	assert.EqualValues(t, 1, res.Stats.ParType[string(TypeHorsPlage)])

	assert.Len(t, res.Recentes, 3)
	assert.Equal(t, PeriodeSemaine, res.Periode)
}

func TestCalculerStatistiquesScopeEmploye(t *testing.T) {
	db := setupDB(t)
	emp := seedEmploye(t, db)
	autre := seedEmploye(t, db)

	_, err := Reconcile(db, emp.ID, jourTest,
		classifie(t, Ecart{Type: TypeAbsenceTotale}))
	require.NoError(t, err)
	_, err = Reconcile(db, autre.ID, jourTest,
		classifie(t, Ecart{Type: TypeAbsenceTotale}))
	require.NoError(t, err)

	scoped, err := CalculerStatistiques(db, emp.ID, PeriodeSemaine, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, scoped.Stats.Total)

	global, err := CalculerStatistiques(db, "", PeriodeSemaine, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 2, global.Stats.Total)
}
