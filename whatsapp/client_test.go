package whatsapp

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaikahub/zaika-api/utils"
)

func TestDecodeImagePayload(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G'}
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{name: "bare base64", input: encoded, want: raw},
		{name: "data URL prefix stripped", input: "data:image/png;base64," + encoded, want: raw},
		{name: "data URL without base64 marker", input: "data:image/png," + encoded, wantErr: true},
		{name: "garbage payload", input: "!!not-base64!!", wantErr: true},
		{name: "empty payload", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeImagePayload(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, utils.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSendBillSuccess(t *testing.T) {
	var gotPhone, gotCaption string
	var gotFile []byte

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/send-file", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotPhone = r.FormValue("phone")
		gotCaption = r.FormValue("caption")

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		gotFile, _ = io.ReadAll(file)

		json.NewEncoder(w).Encode(map[string]string{"messageId": "true_1234@c.us_ABCD"})
	}))
	defer provider.Close()

	client := NewClient(provider.URL, "secret")
	result, err := client.SendBill("+923001112233", []byte("png-bytes"), "Order ORD-1 | Total: Rs 22.50")
	require.NoError(t, err)

	assert.Equal(t, "true_1234@c.us_ABCD", result.MessageID)
	assert.Equal(t, "+923001112233", result.Recipient)
	assert.Equal(t, "+923001112233", gotPhone)
	assert.Contains(t, gotCaption, "Rs 22.50")
	assert.Equal(t, []byte("png-bytes"), gotFile)
}

func TestSendBillTwiceYieldsDistinctMessageIDs(t *testing.T) {
	calls := 0
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]string{"messageId": fmt.Sprintf("msg-%d", calls)})
	}))
	defer provider.Close()

	client := NewClient(provider.URL, "")
	first, err := client.SendBill("+92300", []byte("img"), "caption")
	require.NoError(t, err)
	second, err := client.SendBill("+92300", []byte("img"), "caption")
	require.NoError(t, err)

	assert.Equal(t, 2, calls, "no deduplication: every invocation re-sends")
	assert.NotEqual(t, first.MessageID, second.MessageID)
}

func TestSendBillNoActiveSession(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "no active session"})
	}))
	defer provider.Close()

	client := NewClient(provider.URL, "")
	result, err := client.SendBill("+92300", []byte("img"), "caption")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, utils.ErrDelivery))
	assert.Contains(t, err.Error(), "no active session")
}

func TestSendBillProviderUnreachable(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	provider.Close() // connection refused from here on

	client := NewClient(provider.URL, "")
	_, err := client.SendBill("+92300", []byte("img"), "caption")
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrUpstream))
}

func TestSendBillMissingMessageID(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer provider.Close()

	client := NewClient(provider.URL, "")
	_, err := client.SendBill("+92300", []byte("img"), "caption")
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrDelivery))
}

func TestForwardPassesThroughStatusAndBody(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/session/status":
			json.NewEncoder(w).Encode(map[string]any{"connected": true, "phone": "+92300"})
		case "/session/start":
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]string{"state": "starting"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer provider.Close()

	client := NewClient(provider.URL, "")

	status, body, err := client.ForwardGet("/session/status")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"connected":true`)

	status, body, err = client.ForwardPost("/session/start", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, status)
	assert.Contains(t, string(body), "starting")
}
