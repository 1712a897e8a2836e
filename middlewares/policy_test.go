package middlewares

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zaikahub/zaika-api/models"
)

func TestCan(t *testing.T) {
	tests := []struct {
		role   string
		action string
		want   bool
	}{
		{models.RoleAdmin, ActionOrdersWrite, true},
		{models.RoleAdmin, ActionOrdersDelete, true},
		{models.RoleAdmin, ActionWhatsappManage, true},

		{models.RoleManager, ActionOrdersDelete, true},
		{models.RoleManager, ActionProductsWrite, true},
		{models.RoleManager, ActionWhatsappManage, true},

		{models.RoleCashier, ActionOrdersRead, true},
		{models.RoleCashier, ActionOrdersWrite, true},
		{models.RoleCashier, ActionOrdersSendBill, true},
		{models.RoleCashier, ActionOrdersDelete, false},
		{models.RoleCashier, ActionProductsWrite, false},
		{models.RoleCashier, ActionWhatsappManage, false},

		{"", ActionOrdersRead, false},
		{"guest", ActionOrdersRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.action, func(t *testing.T) {
			principal := Principal{Role: tt.role}
			assert.Equal(t, tt.want, Can(principal, tt.action))
		})
	}
}
