package controllers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/zaikahub/zaika-api/initializers"
	"github.com/zaikahub/zaika-api/whatsapp"
)

// whatsappClient builds a provider client from the environment. The provider
// owns the messaging session; everything here is pass-through.
func whatsappClient() *whatsapp.Client {
	return whatsapp.NewClient(
		initializers.GetEnv("WHATSAPP_API_URL", "http://localhost:3001"),
		os.Getenv("WHATSAPP_API_KEY"),
	)
}

// forwardToProvider wraps a provider response in the {success, data|error}
// envelope the frontend expects.
func forwardToProvider(ctx *gin.Context, status int, body json.RawMessage, err error) {
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}
	if status >= http.StatusBadRequest {
		detail := string(body)
		if detail == "" {
			detail = http.StatusText(status)
		}
		ctx.JSON(status, gin.H{"success": false, "error": detail})
		return
	}
	if len(body) == 0 {
		body = json.RawMessage("null")
	}
	ctx.JSON(status, gin.H{"success": true, "data": body})
}

func SessionStatus(ctx *gin.Context) {
	status, body, err := whatsappClient().ForwardGet("/session/status")
	forwardToProvider(ctx, status, body, err)
}

func StartSession(ctx *gin.Context) {
	status, body, err := whatsappClient().ForwardPost("/session/start", nil)
	forwardToProvider(ctx, status, body, err)
}

func StopSession(ctx *gin.Context) {
	status, body, err := whatsappClient().ForwardPost("/session/stop", nil)
	forwardToProvider(ctx, status, body, err)
}

func RestartSession(ctx *gin.Context) {
	status, body, err := whatsappClient().ForwardPost("/session/restart", nil)
	forwardToProvider(ctx, status, body, err)
}

func SessionQR(ctx *gin.Context) {
	status, body, err := whatsappClient().ForwardGet("/session/qr")
	forwardToProvider(ctx, status, body, err)
}

func RequestPairingCode(ctx *gin.Context) {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.Phone == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "phone is required"})
		return
	}

	status, respBody, err := whatsappClient().ForwardPost("/session/requestPairingCode", body)
	forwardToProvider(ctx, status, respBody, err)
}

func SendNotification(ctx *gin.Context) {
	var body struct {
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.Phone == "" || body.Message == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "phone and message are required"})
		return
	}

	status, respBody, err := whatsappClient().ForwardPost("/send-notification", body)
	forwardToProvider(ctx, status, respBody, err)
}

func PingProvider(ctx *gin.Context) {
	status, body, err := whatsappClient().ForwardGet("/ping")
	forwardToProvider(ctx, status, body, err)
}
