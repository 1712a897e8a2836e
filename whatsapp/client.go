package whatsapp

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/zaikahub/zaika-api/utils"
)

// Client talks to the external WhatsApp messaging microservice. It owns no
// session state: the provider's messaging session is started and stopped
// through the pass-through endpoints and a send against a dead session simply
// fails with the provider's error detail.
type Client struct {
	http *resty.Client
}

type SendResult struct {
	MessageID string `json:"messageId"`
	Recipient string `json:"recipient"`
}

func NewClient(baseURL, apiKey string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		httpClient.SetHeader("Authorization", "Bearer "+apiKey)
	}
	return &Client{http: httpClient}
}

// DecodeImagePayload strips an optional data-URL prefix
// (data:image/png;base64,....) and decodes the remaining base64 body.
func DecodeImagePayload(data string) ([]byte, error) {
	payload := data
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, "base64,")
		if idx < 0 {
			return nil, utils.NewValidationError("image data URL is not base64 encoded")
		}
		payload = payload[idx+len("base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, utils.NewValidationError("invalid base64 image data")
	}
	if len(raw) == 0 {
		return nil, utils.NewValidationError("empty image payload")
	}
	return raw, nil
}

// SendBill uploads the rendered bill image as a file attachment and returns
// the provider's message identifier. No retries: a failed send is terminal
// for this invocation and the caller decides whether to re-trigger.
func (c *Client) SendBill(recipient string, image []byte, caption string) (*SendResult, error) {
	resp, err := c.http.R().
		SetFileReader("file", "bill.png", bytes.NewReader(image)).
		SetFormData(map[string]string{
			"phone":   recipient,
			"caption": caption,
		}).
		Post("/send-file")
	if err != nil {
		return nil, utils.NewUpstreamError(err)
	}
	if resp.IsError() {
		return nil, utils.NewDeliveryError(providerDetail(resp.Body()))
	}

	var payload struct {
		MessageID string `json:"messageId"`
		Error     string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, utils.NewUpstreamError(err)
	}
	if payload.Error != "" {
		return nil, utils.NewDeliveryError(payload.Error)
	}
	if payload.MessageID == "" {
		return nil, utils.NewDeliveryError("provider returned no message id")
	}
	return &SendResult{MessageID: payload.MessageID, Recipient: recipient}, nil
}

// ForwardGet and ForwardPost pass a request through to the provider without
// interpreting the body; the controller wraps the result in the
// {success, data|error} envelope.
func (c *Client) ForwardGet(path string) (int, json.RawMessage, error) {
	resp, err := c.http.R().Get(path)
	if err != nil {
		return 0, nil, utils.NewUpstreamError(err)
	}
	return resp.StatusCode(), json.RawMessage(resp.Body()), nil
}

func (c *Client) ForwardPost(path string, body any) (int, json.RawMessage, error) {
	req := c.http.R().SetHeader("Content-Type", "application/json")
	if body != nil {
		req = req.SetBody(body)
	}
	resp, err := req.Post(path)
	if err != nil {
		return 0, nil, utils.NewUpstreamError(err)
	}
	return resp.StatusCode(), json.RawMessage(resp.Body()), nil
}

// providerDetail pulls the human readable error out of a provider failure
// body, falling back to the raw body.
func providerDetail(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = "provider request failed"
	}
	return detail
}
