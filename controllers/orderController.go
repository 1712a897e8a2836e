package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zaikahub/zaika-api/billing"
	"github.com/zaikahub/zaika-api/initializers"
	"github.com/zaikahub/zaika-api/models"
	"github.com/zaikahub/zaika-api/utils"
	"github.com/zaikahub/zaika-api/whatsapp"
	"gorm.io/gorm"
)

const (
	orderStatusCountsCacheKey = "orders:status-counts"
	cacheTTLShort             = 5 * time.Minute
)

type OrderItemInput struct {
	ProductId   int      `json:"productId"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	BundleItems []string `json:"bundleItems"`
}

type OrderInput struct {
	CustomerName     string           `json:"customerName"`
	CustomerWhatsapp string           `json:"customerWhatsapp"`
	CustomerAddress  string           `json:"customerAddress"`
	CustomerNotes    string           `json:"customerNotes"`
	Items            []OrderItemInput `json:"items"`
	Discount         float64          `json:"discount"`
	DiscountType     string           `json:"discountType"`
	Priority         string           `json:"priority"`
	DeliveryDate     *time.Time       `json:"deliveryDate"`
}

// respondWithAppError maps the workflow error taxonomy onto HTTP statuses in
// one place.
func respondWithAppError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrValidation):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, utils.ErrNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, utils.ErrInvalidTransition):
		sendErrorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, utils.ErrRender):
		sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
	case errors.Is(err, utils.ErrDelivery), errors.Is(err, utils.ErrUpstream):
		sendErrorResponse(ctx, http.StatusBadGateway, err.Error())
	default:
		log.Printf("unexpected error: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
	}
}

func validateOrderInput(input OrderInput) error {
	if input.CustomerName == "" || input.CustomerWhatsapp == "" || input.CustomerAddress == "" {
		return utils.NewValidationError("customer name, whatsapp and address are required")
	}
	if len(input.Items) == 0 {
		return utils.NewValidationError("order must contain at least one item")
	}
	for _, item := range input.Items {
		if item.Name == "" {
			return utils.NewValidationError("every item needs a name")
		}
		if item.Quantity < 1 {
			return utils.NewValidationError("item quantity must be at least 1")
		}
		if item.Price < 0 {
			return utils.NewValidationError("item price cannot be negative")
		}
	}
	if input.Discount < 0 {
		return utils.NewValidationError("discount cannot be negative")
	}
	if input.DiscountType != "" && input.DiscountType != models.DiscountTypeAmount && input.DiscountType != models.DiscountTypePercentage {
		return utils.NewValidationError("discountType must be amount or percentage")
	}
	if input.Priority != "" && !models.ValidPriority(input.Priority) {
		return utils.NewValidationError("priority must be low, medium or high")
	}
	return nil
}

// buildOrderItems recomputes every subtotal server-side; client supplied
// subtotals are advisory only.
func buildOrderItems(inputs []OrderItemInput) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		item := models.OrderItem{
			ProductId: in.ProductId,
			Name:      in.Name,
			Category:  in.Category,
			Price:     in.Price,
			Quantity:  in.Quantity,
			Subtotal:  utils.LineSubtotal(in.Price, in.Quantity),
		}
		if len(in.BundleItems) > 0 {
			if raw, err := json.Marshal(in.BundleItems); err == nil {
				item.BundleItems = raw
			}
		}
		items = append(items, item)
	}
	return items
}

func pricedInputs(items []models.OrderItem) []utils.PricedItem {
	priced := make([]utils.PricedItem, 0, len(items))
	for _, item := range items {
		priced = append(priced, utils.PricedItem{Price: item.Price, Quantity: item.Quantity})
	}
	return priced
}

func CreateOrder(ctx *gin.Context) {
	var input OrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validateOrderInput(input); err != nil {
		respondWithAppError(ctx, err)
		return
	}

	discountType := input.DiscountType
	if discountType == "" {
		discountType = models.DiscountTypeAmount
	}
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	items := buildOrderItems(input.Items)
	totals := utils.ComputeOrderTotals(pricedInputs(items), input.Discount, discountType)

	order := models.Order{
		OrderNumber:      models.NewOrderNumber(),
		CustomerName:     input.CustomerName,
		CustomerWhatsapp: input.CustomerWhatsapp,
		CustomerAddress:  input.CustomerAddress,
		CustomerNotes:    input.CustomerNotes,
		Items:            items,
		Discount:         input.Discount,
		DiscountType:     discountType,
		TotalAmount:      totals.TotalAmount,
		FinalAmount:      totals.FinalAmount,
		Status:           models.StatusPending,
		Priority:         priority,
		DeliveryDate:     input.DeliveryDate,
	}

	if err := initializers.DB.Create(&order).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create order", err)
		return
	}

	invalidateOrderCaches()
	ctx.JSON(http.StatusCreated, order)
}

func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}
	offset := (page - 1) * limit

	query := initializers.DB.Preload("Items").Model(&models.Order{})
	countQuery := initializers.DB.Model(&models.Order{})

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}
	if priority := ctx.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
		countQuery = countQuery.Where("priority = ?", priority)
	}
	if search := ctx.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("order_number LIKE ? OR customer_name LIKE ? OR customer_whatsapp LIKE ?", like, like, like)
		countQuery = countQuery.Where("order_number LIKE ? OR customer_name LIKE ? OR customer_whatsapp LIKE ?", like, like, like)
	}

	if result := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&orders); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	var count int64
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders":       orders,
		"statusCounts": getStatusCounts(),
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

// getStatusCounts returns order counts per status, cached briefly in redis.
func getStatusCounts() map[string]int64 {
	counts := map[string]int64{}
	for _, status := range models.OrderStatuses {
		counts[status] = 0
	}

	if initializers.Redis != nil {
		cached, err := initializers.Redis.Get(context.Background(), orderStatusCountsCacheKey).Result()
		if err == nil && json.Unmarshal([]byte(cached), &counts) == nil {
			return counts
		}
	}

	rows := []struct {
		Status string
		Count  int64
	}{}
	initializers.DB.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows)
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	if initializers.Redis != nil {
		if raw, err := json.Marshal(counts); err == nil {
			initializers.Redis.Set(context.Background(), orderStatusCountsCacheKey, raw, cacheTTLShort)
		}
	}
	return counts
}

func invalidateOrderCaches() {
	if initializers.Redis != nil {
		initializers.Redis.Del(context.Background(), orderStatusCountsCacheKey)
	}
}

func findOrder(id int) (*models.Order, error) {
	var order models.Order
	result := initializers.DB.Preload("Items").First(&order, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("order", id)
		}
		return nil, result.Error
	}
	return &order, nil
}

func orderIDParam(ctx *gin.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, utils.NewValidationError("invalid order id")
	}
	return id, nil
}

func GetOrder(ctx *gin.Context) {
	id, err := orderIDParam(ctx)
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	order, err := findOrder(id)
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

func UpdateOrder(ctx *gin.Context) {
	id, err := orderIDParam(ctx)
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	order, err := findOrder(id)
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	// Confirmed and cancelled orders are final; edits are refused outright.
	if order.IsTerminal() {
		respondWithAppError(ctx, utils.NewInvalidTransitionError(order.Status, "edit"))
		return
	}

	var input OrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateOrderInput(input); err != nil {
		respondWithAppError(ctx, err)
		return
	}

	discountType := input.DiscountType
	if discountType == "" {
		discountType = models.DiscountTypeAmount
	}

	items := buildOrderItems(input.Items)
	totals := utils.ComputeOrderTotals(pricedInputs(items), input.Discount, discountType)

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update order items", err)
		return
	}

	order.CustomerName = input.CustomerName
	order.CustomerWhatsapp = input.CustomerWhatsapp
	order.CustomerAddress = input.CustomerAddress
	order.CustomerNotes = input.CustomerNotes
	order.Items = items
	order.Discount = input.Discount
	order.DiscountType = discountType
	order.TotalAmount = totals.TotalAmount
	order.FinalAmount = totals.FinalAmount
	if input.Priority != "" {
		order.Priority = input.Priority
	}
	order.DeliveryDate = input.DeliveryDate

	if err := tx.Save(order).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update order", err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save order", err)
		return
	}

	invalidateOrderCaches()
	ctx.JSON(http.StatusOK, order)
}

func changeOrderStatus(ctx *gin.Context, newStatus string) {
	id, err := orderIDParam(ctx)
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	order, err := findOrder(id)
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	if err := order.CanTransitionTo(newStatus); err != nil {
		respondWithAppError(ctx, err)
		return
	}

	// Transitions touch status and updatedAt only, never money.
	if err := initializers.DB.Model(order).Update("status", newStatus).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update order status", err)
		return
	}
	order.Status = newStatus

	invalidateOrderCaches()
	ctx.JSON(http.StatusOK, order)
}

func UpdateOrderStatus(ctx *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}
	changeOrderStatus(ctx, body.Status)
}

// ConfirmOrder is the explicit two-step confirm endpoint. The UI asks the
// user twice before calling it; the state machine is still re-checked here.
func ConfirmOrder(ctx *gin.Context) {
	changeOrderStatus(ctx, models.StatusConfirmed)
}

func DeleteOrder(ctx *gin.Context) {
	id, err := orderIDParam(ctx)
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	order, err := findOrder(id)
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	if result := initializers.DB.Select("Items").Delete(order); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete order", result.Error)
		return
	}

	invalidateOrderCaches()
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully."})
}

func businessFromEnv() billing.Business {
	return billing.Business{
		Name:     initializers.GetEnv("BUSINESS_NAME", "Zaika Catering"),
		Tagline:  os.Getenv("BUSINESS_TAGLINE"),
		Phone:    os.Getenv("BUSINESS_PHONE"),
		Address:  os.Getenv("BUSINESS_ADDRESS"),
		Currency: initializers.GetEnv("BUSINESS_CURRENCY", "Rs"),
	}
}

// uploadBillImage archives the rendered bill in S3 and returns the public
// URL recorded on the order.
func uploadBillImage(order *models.Order, image []byte) (string, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return "", utils.NewUpstreamError(err)
	}

	uploader := manager.NewUploader(s3.NewFromConfig(cfg))
	key := fmt.Sprintf("bills/%s/%s.png", order.OrderNumber, uuid.NewString())
	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(initializers.GetEnv("BILL_BUCKET", "zaika-bills")),
		Key:         aws.String(key),
		Body:        bytes.NewReader(image),
		ACL:         "public-read",
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", utils.NewUpstreamError(err)
	}
	return result.Location, nil
}

// SendOrderBill runs the bill pipeline: resolve the image (client supplied
// data URL or server-side render), archive to S3, send over WhatsApp, then
// record the delivery sub-record. Any failure leaves the order exactly as it
// was; re-invoking re-renders and re-sends with a fresh provider message id.
func SendOrderBill(ctx *gin.Context) {
	id, err := orderIDParam(ctx)
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	order, err := findOrder(id)
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	var body struct {
		ImageData string `json:"imageData"`
	}
	// Body is optional; without it the bill is rendered server-side.
	_ = ctx.ShouldBindJSON(&body)

	var image []byte
	if body.ImageData != "" {
		image, err = whatsapp.DecodeImagePayload(body.ImageData)
	} else {
		image, err = billing.RenderPNG(order, businessFromEnv())
	}
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	imageUrl, err := uploadBillImage(order, image)
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	caption := billing.Caption(order, businessFromEnv())
	result, err := whatsappClient().SendBill(order.CustomerWhatsapp, image, caption)
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	now := time.Now()
	updates := map[string]any{
		"bill_sent":           true,
		"bill_sent_at":        &now,
		"bill_image_url":      imageUrl,
		"whatsapp_message_id": result.MessageID,
	}
	if err := initializers.DB.Model(order).Updates(updates).Error; err != nil {
		// The provider already accepted the message; log and still answer.
		log.Printf("Bill sent for order %s but delivery record not saved: %v", order.OrderNumber, err)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"sentTo":            result.Recipient,
		"billImageUrl":      imageUrl,
		"whatsappMessageId": result.MessageID,
	})
}

// GetOrderBillPDF exports the paginated bill document.
func GetOrderBillPDF(ctx *gin.Context) {
	id, err := orderIDParam(ctx)
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	order, err := findOrder(id)
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	data, err := billing.RenderPDF(order, businessFromEnv())
	if err != nil {
		respondWithAppError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", order.OrderNumber))
	ctx.Data(http.StatusOK, "application/pdf", data)
}
