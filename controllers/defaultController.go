package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Zaika Catering API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create staff account
- POST "/auth/login" - Exchange credentials for a token

ORDERS
- GET "/orders" - List orders (filter by status/priority/search, paginated)
- POST "/orders" - Create a new order
- GET "/orders/:id" - Get order by ID
- PUT "/orders/:id" - Update an order (not once confirmed/cancelled)
- PATCH "/orders/:id/status" - Change order status
- PATCH "/orders/:id/confirm" - Confirm an order
- DELETE "/orders/:id" - Delete order by ID
- POST "/orders/:id/send-bill" - Render and send the bill over WhatsApp
- GET "/orders/:id/bill.pdf" - Download the bill as PDF

PRODUCTS
- GET "/products" - List products (paginated, searchable)
- POST "/products" - Create product
- GET "/products/:id" - Get product by ID
- PUT "/products/:id" - Update product
- DELETE "/products/:id" - Delete product
- GET "/products/category/:category" - Products in one category
- POST "/products/:id/images" - Upload product images
- GET "/categories" - List categories
- POST "/categories" - Create category
- DELETE "/categories/:id" - Delete category

WHATSAPP
- GET "/whatsapp/session/status" - Provider session status
- POST "/whatsapp/session/start|stop|restart" - Manage provider session
- GET "/whatsapp/session/qr" - Pairing QR code
- POST "/whatsapp/session/requestPairingCode" - Request pairing code
- POST "/whatsapp/send-notification" - Send a plain text notification
- GET "/whatsapp/ping" - Provider health check`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
