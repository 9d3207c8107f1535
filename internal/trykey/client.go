package trykey

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"trykey-dashboard/internal/domain"
)

// ControlSuccessMessage is the exact confirmation the platform returns for an
// accepted control command. Anything else is an error even on HTTP 200.
const ControlSuccessMessage = "Command sent successfully"

// Client talks to the Trykey platform API. All write operations are encoded
// as multipart form data, matching the platform's global content type.
type Client struct {
	BaseURL string
	Token   string // bearer credential, sourced from config at runtime
	Client  *http.Client
}

// NewClient returns a Client with the default 10s transport timeout.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// APIError carries the upstream status and body for non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("trykey api: status %d body: %s", e.StatusCode, e.Body)
}

// ListAssets fetches all assets visible to the credential (GET /assets/).
func (c *Client) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	var assets []domain.Asset
	if err := c.getJSON(ctx, "/assets/", &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// AssetStatus fetches the occupancy aggregate and daily series for one asset.
func (c *Client) AssetStatus(ctx context.Context, assetNumber string) (*domain.AssetStatus, error) {
	var status domain.AssetStatus
	if err := c.getJSON(ctx, "/assets/"+assetNumber+"/status/", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListRooms fetches the full room set for an asset in a single request; the
// platform does not page this endpoint.
func (c *Client) ListRooms(ctx context.Context, assetNumber string) ([]domain.Room, error) {
	var rooms []domain.Room
	if err := c.getJSON(ctx, "/assets/"+assetNumber+"/rooms/", &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// ListTransactions fetches the payment ledger for an asset.
func (c *Client) ListTransactions(ctx context.Context, assetNumber string) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := c.getJSON(ctx, "/assets/"+assetNumber+"/transactions/", &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// SendControl submits an actuation command and returns the platform's
// confirmation message. The caller decides whether the message means success.
func (c *Client) SendControl(ctx context.Context, cmd domain.ControlCommand) (string, error) {
	fields := map[string]string{
		"data":        cmd.Data,
		"action_type": cmd.ActionType,
	}
	path := "/assets/" + cmd.AssetNumber + "/control/" + cmd.SubAssetNumber + "/"
	body, err := c.postForm(ctx, path, fields)
	if err != nil {
		return "", err
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("trykey control response decode: %w", err)
	}
	return out.Message, nil
}

// InitPayment submits a payment initiation. The response payload is opaque;
// its presence is the success signal.
func (c *Client) InitPayment(ctx context.Context, req domain.PaymentRequest) (map[string]interface{}, error) {
	fields := map[string]string{
		"email":            req.Email,
		"name":             req.Name,
		"phonenumber":      req.PhoneNumber,
		"amount":           req.Amount,
		"redirect_url":     req.RedirectURL,
		"title":            req.Title,
		"description":      req.Description,
		"asset_number":     req.AssetNumber,
		"sub_asset_number": req.SubAssetNumber,
		"currency":         req.Currency,
		"is_outgoing":      strconv.FormatBool(req.IsOutgoing),
	}
	body, err := c.postForm(ctx, "/payment/init/", fields)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("trykey payment response decode: %w", err)
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("trykey response decode: %w", err)
	}
	return nil
}

func (c *Client) postForm(ctx context.Context, path string, fields map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, &buf, w.FormDataContentType())
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if c.BaseURL == "" {
		return nil, fmt.Errorf("trykey: TRYKEY_API_URL is not set")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trykey request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}
