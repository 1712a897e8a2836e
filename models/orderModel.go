package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zaikahub/zaika-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	DiscountTypeAmount     = "amount"
	DiscountTypePercentage = "percentage"
)

var OrderStatuses = []string{StatusPending, StatusPreparing, StatusReady, StatusConfirmed, StatusCancelled}

type Order struct {
	gorm.Model
	OrderNumber      string      `json:"orderNumber" gorm:"uniqueIndex;size:32"`
	CustomerName     string      `json:"customerName"`
	CustomerWhatsapp string      `json:"customerWhatsapp"`
	CustomerAddress  string      `json:"customerAddress"`
	CustomerNotes    string      `json:"customerNotes"`
	Items            []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Discount         float64     `json:"discount"`
	DiscountType     string      `json:"discountType"`
	TotalAmount      float64     `json:"totalAmount"`
	FinalAmount      float64     `json:"finalAmount"`
	Status           string      `json:"status"`
	Priority         string      `json:"priority"`
	DeliveryDate     *time.Time  `json:"deliveryDate"`

	// Delivery sub-record, written only by the send-bill pipeline.
	BillSent          bool       `json:"billSent"`
	BillSentAt        *time.Time `json:"billSentAt"`
	BillImageUrl      string     `json:"billImageUrl"`
	WhatsappMessageID string     `json:"whatsappMessageId"`
}

type OrderItem struct {
	gorm.Model
	OrderID     int            `json:"orderId"`
	ProductId   int            `json:"productId"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Price       float64        `json:"price"`
	Quantity    int            `json:"quantity"`
	Subtotal    float64        `json:"subtotal"`
	BundleItems datatypes.JSON `json:"bundleItems"`
}

func ValidStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func ValidPriority(priority string) bool {
	return priority == PriorityLow || priority == PriorityMedium || priority == PriorityHigh
}

// IsTerminal reports whether the order accepts no further status change.
func (o *Order) IsTerminal() bool {
	return o.Status == StatusConfirmed || o.Status == StatusCancelled
}

// CanTransitionTo enforces the status state machine: confirmed and cancelled
// are terminal, every other state may move to any known status including
// itself.
func (o *Order) CanTransitionTo(next string) error {
	if !ValidStatus(next) {
		return utils.NewValidationError(fmt.Sprintf("unknown order status %q", next))
	}
	if o.IsTerminal() {
		return utils.NewInvalidTransitionError(o.Status, next)
	}
	return nil
}

// NewOrderNumber builds the human-readable display identifier, e.g.
// ORD-20250901-7F3A2C.
func NewOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
