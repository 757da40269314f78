package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-storage-api/internal/application/ports"
	"clinic-storage-api/internal/interface/api/rest/middleware"
)

type AuthController struct {
	logger *zap.Logger
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	resolver ports.IdentityResolver,
) *AuthController {
	ac := &AuthController{
		logger: logger,
	}

	r.GET(RouteWhoami, middleware.AuthMiddleware(resolver), ac.WhoamiHandler)

	return ac
}

// WhoamiHandler confirms which identity the provider resolved for the
// presented token.
func (ac *AuthController) WhoamiHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"userId": c.GetString(middleware.CtxUserID)})
}
