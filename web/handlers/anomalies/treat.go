package anomalies

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gestirh.com/gestirh/anomalie"
	"gestirh.com/gestirh/web/common"
	"gestirh.com/gestirh/web/middlewares"
)

type TraiterDTO struct {
	Action       string   `json:"action" binding:"required,oneof=valider refuser corriger"`
	Commentaire  *string  `json:"commentaire"`
	MontantExtra *float64 `json:"montantExtra"`
	HeuresExtra  *float64 `json:"heuresExtra"`
}

type TraiterResponse struct {
	Success  bool               `json:"success"`
	Anomalie *anomalie.Anomalie `json:"anomalie"`
}

func (ep *Endpoint) Traiter(c *gin.Context) {
	id := c.Param("id")

	var dto TraiterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	identite, ok := middlewares.CurrentIdentite(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	traitee, err := anomalie.Traiter(ep.DB, id, anomalie.DemandeTraitement{
		Action:       anomalie.ActionTraitement(dto.Action),
		Commentaire:  dto.Commentaire,
		MontantExtra: dto.MontantExtra,
		HeuresExtra:  dto.HeuresExtra,
	}, identite.UtilisateurID)
	if err != nil {
		ep.respondError(c, err)
		return
	}

	ep.Cache.Invalider(c.Request.Context(), traitee.EmployeID)

	c.JSON(http.StatusOK, TraiterResponse{
		Success:  true,
		Anomalie: traitee,
	})
}
