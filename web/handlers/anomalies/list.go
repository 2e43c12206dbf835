package anomalies

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gestirh.com/gestirh/anomalie"
	"gestirh.com/gestirh/web/common"
)

type ListResponse struct {
	Success    bool                `json:"success"`
	Anomalies  []anomalie.Anomalie `json:"anomalies"`
	Pagination common.Pagination   `json:"pagination"`
}

func (ep *Endpoint) List(c *gin.Context) {
	filtres := anomalie.FiltresRecherche{
		EmployeID: c.Query("employeId"),
		Statut:    anomalie.StatutAnomalie(c.Query("statut")),
		Type:      anomalie.TypeEcart(c.Query("type")),
		Gravite:   anomalie.Gravite(c.Query("gravite")),
		Limit:     50,
	}

	if val, err := strconv.Atoi(c.Query("limit")); err == nil {
		filtres.Limit = val
	}
	if val, err := strconv.Atoi(c.Query("offset")); err == nil {
		filtres.Offset = val
	}

	if s := c.Query("dateDebut"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("dateDebut invalide"))
			return
		}
		filtres.DateDebut = &t
	}
	if s := c.Query("dateFin"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("dateFin invalide"))
			return
		}
		filtres.DateFin = &t
	}

	items, total, err := anomalie.Rechercher(ep.DB, filtres)
	if err != nil {
		ep.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Success:    true,
		Anomalies:  items,
		Pagination: common.NewPagination(total, filtres.Limit, filtres.Offset),
	})
}
