package actionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// Actions understood by the inventory backend.
const (
	ActionMovementHistory        = "get_movement_history"
	ActionLocationsForFilter     = "get_locations_for_filter"
	ActionReportsData            = "get_reports_data"
	ActionInventorySummaryReport = "get_inventory_summary_report"
	ActionLowStockReport         = "get_low_stock_report"
	ActionExpiryReport           = "get_expiry_report"
	ActionMovementHistoryReport  = "get_movement_history_report"
	ActionStockAdjustments       = "get_stock_adjustments"
	ActionStockAdjustmentStats   = "get_stock_adjustment_stats"
	ActionCreateStockAdjustment  = "create_stock_adjustment"
	ActionUpdateStockAdjustment  = "update_stock_adjustment"
	ActionDeleteStockAdjustment  = "delete_stock_adjustment"
	ActionLogActivity            = "log_activity"
)

var (
	// ErrTransport covers network failures and non-2xx responses.
	ErrTransport = errors.New("inventory api transport error")
	// ErrMalformedResponse is returned when the body is not a JSON object.
	ErrMalformedResponse = errors.New("inventory api returned a malformed response")
)

// APIError is an application-level failure reported with success=false.
type APIError struct {
	Action  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed", e.Action)
	}
	return e.Message
}

// Caller is the subset of the client used by the screens.
type Caller interface {
	Call(ctx context.Context, action string, params map[string]any) (*Response, error)
}

// Response is the decoded envelope {success, message, data, ...extra}.
type Response struct {
	Success bool
	Message string
	Data    json.RawMessage
	Extra   map[string]json.RawMessage
}

// Records decodes data as a list of records. A missing or null data field
// yields an empty, non-nil slice.
func (r *Response) Records() ([]models.Record, error) {
	records := []models.Record{}
	if len(r.Data) == 0 || bytes.Equal(r.Data, []byte("null")) {
		return records, nil
	}
	if err := json.Unmarshal(r.Data, &records); err != nil {
		return nil, fmt.Errorf("%w: data is not a record list: %v", ErrMalformedResponse, err)
	}
	return records, nil
}

// Decode unmarshals data into v.
func (r *Response) Decode(v any) error {
	if len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// ExtraMap decodes an extra top-level field as an object, nil when absent.
func (r *Response) ExtraMap(key string) map[string]any {
	raw, ok := r.Extra[key]
	if !ok {
		return nil
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// Client is a resty-backed implementation of Caller.
type Client struct {
	httpClient *resty.Client
	endpoint   string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient builds an inventory API client from configuration.
func NewClient(cfg config.InventoryAPIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		httpClient: restyClient,
		endpoint:   cfg.URL,
		limiter:    limiter,
		logger:     logger,
	}
}

// Call posts {action, ...params} and decodes the envelope. Every failure mode
// is returned as an error: ErrTransport, ErrMalformedResponse or *APIError.
func (c *Client) Call(ctx context.Context, action string, params map[string]any) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTransport, action, err)
		}
	}

	payload := make(map[string]any, len(params)+1)
	for k, v := range params {
		payload[k] = v
	}
	payload["action"] = action

	start := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, action, err)
	}

	c.logger.Debug("inventory api call",
		zap.String("action", action),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s: status %d", ErrTransport, action, resp.StatusCode())
	}

	return decodeEnvelope(action, resp.Body())
}

func decodeEnvelope(action string, body []byte) (*Response, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, action, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: %s: empty body", ErrMalformedResponse, action)
	}

	out := &Response{Extra: map[string]json.RawMessage{}}
	for key, raw := range fields {
		switch key {
		case "success":
			if err := json.Unmarshal(raw, &out.Success); err != nil {
				return nil, fmt.Errorf("%w: %s: success is not a boolean", ErrMalformedResponse, action)
			}
		case "message":
			// Some actions send a non-string message; keep its JSON text.
			if err := json.Unmarshal(raw, &out.Message); err != nil {
				out.Message = string(raw)
			}
		case "data":
			out.Data = raw
		default:
			out.Extra[key] = raw
		}
	}

	if !out.Success {
		return out, &APIError{Action: action, Message: out.Message}
	}

	return out, nil
}
