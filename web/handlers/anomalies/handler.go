package anomalies

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gestirh.com/gestirh/anomalie"
	"gestirh.com/gestirh/security"
	"gestirh.com/gestirh/web/common"
	"gestirh.com/gestirh/web/middlewares"
)

type Endpoint struct {
	DB          *gorm.DB
	Classifieur *anomalie.Classifieur
	Cache       *anomalie.CacheStats
	Log         *zap.SugaredLogger
}

// Register wires the anomaly routes. Reads need any authenticated caller;
// mutations are gated behind manager-or-above.
func Register(r *gin.RouterGroup, ep *Endpoint) {
	gestion := middlewares.RequireRole(security.RoleManager)

	r.POST("/anomalies/sync", gestion, ep.Sync)
	r.GET("/anomalies", ep.List)
	r.PUT("/anomalies/:id/traiter", gestion, ep.Traiter)
	r.GET("/anomalies/stats", ep.Stats)
}

// respondError maps domain errors onto the HTTP taxonomy. Store failures are
// logged in full and surfaced opaquely.
func (ep *Endpoint) respondError(c *gin.Context, err error) {
	var validation *anomalie.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(validation.Message))
		return
	}

	if errors.Is(err, anomalie.ErrAnomalieIntrouvable) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Anomalie introuvable"))
		return
	}

	var etat *anomalie.EtatInvalideError
	if errors.As(err, &etat) {
		c.JSON(http.StatusConflict, common.NewConflictResponse(
			"Anomalie deja traitee", string(etat.Statut)))
		return
	}

	ep.Log.Errorw("store error", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Erreur interne"))
}
