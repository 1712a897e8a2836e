package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/zaikahub/zaika-api/controllers"
	"github.com/zaikahub/zaika-api/middlewares"
)

func WhatsappRoutes(server *gin.Engine) {
	wa := server.Group("/whatsapp",
		middlewares.RateLimit("30-M"),
		middlewares.RequireAuth(),
		middlewares.RequirePermission(middlewares.ActionWhatsappManage),
	)
	{
		wa.GET("/session/status", controllers.SessionStatus)
		wa.POST("/session/start", controllers.StartSession)
		wa.POST("/session/stop", controllers.StopSession)
		wa.POST("/session/restart", controllers.RestartSession)
		wa.GET("/session/qr", controllers.SessionQR)
		wa.POST("/session/requestPairingCode", controllers.RequestPairingCode)
		wa.POST("/send-notification", controllers.SendNotification)
		wa.GET("/ping", controllers.PingProvider)
	}
}
