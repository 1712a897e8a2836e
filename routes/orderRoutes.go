package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/zaikahub/zaika-api/controllers"
	"github.com/zaikahub/zaika-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.GET("", middlewares.RequirePermission(middlewares.ActionOrdersRead), controllers.GetOrders)
		orders.GET("/:id", middlewares.RequirePermission(middlewares.ActionOrdersRead), controllers.GetOrder)
		orders.GET("/:id/bill.pdf", middlewares.RequirePermission(middlewares.ActionOrdersRead), controllers.GetOrderBillPDF)
		orders.POST("", middlewares.RequirePermission(middlewares.ActionOrdersWrite), controllers.CreateOrder)
		orders.PUT("/:id", middlewares.RequirePermission(middlewares.ActionOrdersWrite), controllers.UpdateOrder)
		orders.PATCH("/:id/status", middlewares.RequirePermission(middlewares.ActionOrdersWrite), controllers.UpdateOrderStatus)
		orders.PATCH("/:id/confirm", middlewares.RequirePermission(middlewares.ActionOrdersWrite), controllers.ConfirmOrder)
		orders.DELETE("/:id", middlewares.RequirePermission(middlewares.ActionOrdersDelete), controllers.DeleteOrder)
		orders.POST("/:id/send-bill", middlewares.RequirePermission(middlewares.ActionOrdersSendBill), controllers.SendOrderBill)
	}
}
