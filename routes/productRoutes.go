package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/zaikahub/zaika-api/controllers"
	"github.com/zaikahub/zaika-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/products", controllers.GetProducts)
	server.GET("/products/:id", controllers.GetProduct)
	server.GET("/products/category/:category", controllers.GetProductsByCategory)
	server.GET("/categories", controllers.GetCategories)

	write := middlewares.RequirePermission(middlewares.ActionProductsWrite)
	authed := server.Group("/", middlewares.RequireAuth())
	{
		authed.POST("products", write, controllers.CreateProduct)
		authed.PUT("products/:id", write, controllers.UpdateProduct)
		authed.DELETE("products/:id", write, controllers.DeleteProduct)
		authed.POST("products/:id/images", write, controllers.UploadProductImages)
		authed.POST("categories", write, controllers.CreateCategory)
		authed.DELETE("categories/:id", write, controllers.DeleteCategory)
	}
}
