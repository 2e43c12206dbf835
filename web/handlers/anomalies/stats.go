package anomalies

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gestirh.com/gestirh/anomalie"
)

type StatsResponse struct {
	Success           bool                  `json:"success"`
	Stats             anomalie.Statistiques `json:"stats"`
	AnomaliesRecentes []anomalie.Anomalie   `json:"anomaliesRecentes"`
	Periode           anomalie.Periode      `json:"periode"`
}

func (ep *Endpoint) Stats(c *gin.Context) {
	employeID := c.Query("employeId")
	periode := anomalie.Periode(c.Query("periode")).Normaliser()
	ctx := c.Request.Context()

	res, ok := ep.Cache.Lire(ctx, employeID, periode)
	if !ok {
		var err error
		res, err = anomalie.CalculerStatistiques(ep.DB, employeID, periode, time.Now())
		if err != nil {
			ep.respondError(c, err)
			return
		}
		ep.Cache.Ecrire(ctx, employeID, periode, res)
	}

	c.JSON(http.StatusOK, StatsResponse{
		Success:           true,
		Stats:             res.Stats,
		AnomaliesRecentes: res.Recentes,
		Periode:           res.Periode,
	})
}
