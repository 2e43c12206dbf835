package anomalies

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gestirh.com/gestirh/anomalie"
	"gestirh.com/gestirh/core"
	"gestirh.com/gestirh/web/common"
)

type SyncDTO struct {
	EmployeID   string           `json:"employeId" binding:"required"`
	Date        *common.DateOnly `json:"date" binding:"required"`
	Ecarts      []anomalie.Ecart `json:"ecarts" binding:"required"`
	ForceCreate bool             `json:"forceCreate"`
}

type SyncResponse struct {
	Success         bool                `json:"success"`
	AnomaliesCreees int                 `json:"anomaliesCreees"`
	Anomalies       []anomalie.Anomalie `json:"anomalies"`
	Message         string              `json:"message,omitempty"`
}

// Sync receives raw deviations from the planning comparison, classifies them
// and reconciles the significant ones into the store.
func (ep *Endpoint) Sync(c *gin.Context) {
	var dto SyncDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	emp, err := core.FindEmployeByID(ep.DB, dto.EmployeID)
	if err != nil {
		ep.respondError(c, err)
		return
	}
	if emp == nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Employe inconnu"))
		return
	}

	classifies, err := ep.Classifieur.Classifier(dto.Ecarts, dto.ForceCreate)
	if err != nil {
		ep.respondError(c, err)
		return
	}

	if len(classifies) == 0 {
		message := "Aucun ecart significatif"
		if dto.ForceCreate {
			// forceCreate bypasses filtering, so this can only mean the
			// caller sent an empty list.
			message = "Aucun ecart fourni"
		}
		c.JSON(http.StatusOK, SyncResponse{
			Success:   true,
			Anomalies: []anomalie.Anomalie{},
			Message:   message,
		})
		return
	}

	result, err := anomalie.Reconcile(ep.DB, dto.EmployeID, dto.Date.Time, classifies)
	if err != nil {
		ep.respondError(c, err)
		return
	}

	ep.Cache.Invalider(c.Request.Context(), dto.EmployeID)

	c.JSON(http.StatusOK, SyncResponse{
		Success:         true,
		AnomaliesCreees: len(result),
		Anomalies:       result,
	})
}
