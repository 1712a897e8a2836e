package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zaikahub/zaika-api/models"
)

// Actions checked at the API boundary. Client-side gating is display only;
// every mutating route re-validates here.
const (
	ActionOrdersRead     = "orders:read"
	ActionOrdersWrite    = "orders:write"
	ActionOrdersDelete   = "orders:delete"
	ActionOrdersSendBill = "orders:send-bill"
	ActionProductsWrite  = "products:write"
	ActionWhatsappManage = "whatsapp:manage"
)

var rolePermissions = map[string][]string{
	models.RoleAdmin: {
		ActionOrdersRead, ActionOrdersWrite, ActionOrdersDelete, ActionOrdersSendBill,
		ActionProductsWrite, ActionWhatsappManage,
	},
	models.RoleManager: {
		ActionOrdersRead, ActionOrdersWrite, ActionOrdersDelete, ActionOrdersSendBill,
		ActionProductsWrite, ActionWhatsappManage,
	},
	models.RoleCashier: {
		ActionOrdersRead, ActionOrdersWrite, ActionOrdersSendBill,
	},
}

// Can is the single policy evaluation point for role based access.
func Can(principal Principal, action string) bool {
	for _, allowed := range rolePermissions[principal.Role] {
		if allowed == action {
			return true
		}
	}
	return false
}

// RequirePermission gates a route group on one action.
func RequirePermission(action string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal, ok := GetPrincipal(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}
		if !Can(principal, action) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "You do not have permission to perform this action"})
			return
		}
		ctx.Next()
	}
}
