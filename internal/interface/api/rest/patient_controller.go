package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-storage-api/internal/application/ports"
	"clinic-storage-api/internal/interface/api/rest/dto/patient"
	"clinic-storage-api/internal/interface/api/rest/middleware"
)

type PatientController struct {
	patientService ports.PatientService
	logger         *zap.Logger
}

func NewPatientController(
	r *gin.Engine,
	patientService ports.PatientService,
	logger *zap.Logger,
	resolver ports.IdentityResolver,
) *PatientController {
	pc := &PatientController{
		patientService: patientService,
		logger:         logger,
	}

	r.GET(RoutePatients, middleware.AuthMiddleware(resolver), pc.GetPatientsHandler)

	return pc
}

// GetPatientsHandler lists the patients owned by the caller, ordered by
// last name.
func (pc *PatientController) GetPatientsHandler(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	pats, err := pc.patientService.FindPatientsByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get patients"},
		)
		pc.logger.Error("FindPatientsByOwner() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, patient.ToResponsePatients(pats))
}
