package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adonay-express/orderflow/internal/server/http/dto"
)

// ConnectivityHandler reports the merged store connectivity state.
type ConnectivityHandler struct {
	facade ConnectivityFacade
}

// NewConnectivityHandler constructs ConnectivityHandler.
func NewConnectivityHandler(facade ConnectivityFacade) *ConnectivityHandler {
	return &ConnectivityHandler{facade: facade}
}

// State handles GET /api/connectivity.
func (h *ConnectivityHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ConnectivityResponse{State: string(h.facade.Connectivity())})
}
