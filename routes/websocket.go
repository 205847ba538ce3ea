package routes

import (
	"github.com/MRabbani007/tasker/middleware"
	"github.com/MRabbani007/tasker/services"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes wires the live-update channel. The handshake is
// authenticated with a channel token minted from a valid session.
func RegisterWebSocketRoutes(router *gin.Engine, wsService services.WebSocketServiceInterface, authService services.AuthServiceInterface) {
	router.GET("/ws", middleware.WebSocketAuthMiddleware(authService), wsService.HandleConnection)
}
