package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/audit"
	"github.com/mamadbah2/stockdesk/internal/service/notify"
	"github.com/mamadbah2/stockdesk/pkg/clients/actionapi"
	"github.com/mamadbah2/stockdesk/pkg/debounce"
	"github.com/mamadbah2/stockdesk/pkg/validator"
)

var (
	// ErrReadOnly is returned when a mutation is attempted on a read-only screen.
	ErrReadOnly = errors.New("screen is read-only")
	// ErrNotConfirmed is returned when a deletion was not confirmed.
	ErrNotConfirmed = errors.New("deletion not confirmed")
)

// Confirmer asks the user to approve a destructive operation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// View is a consistent snapshot of a screen.
type View struct {
	Screen      string             `json:"screen"`
	Filter      models.FilterState `json:"filter"`
	Page        Page               `json:"page"`
	Stats       models.Statistics  `json:"stats"`
	ServerStats map[string]any     `json:"server_stats,omitempty"`
	Loading     bool               `json:"loading"`
	Error       string             `json:"error,omitempty"`
	RecordCount int                `json:"record_count"`
	FetchedAt   *time.Time         `json:"fetched_at,omitempty"`
}

// Options tunes a Controller. Zero values get defaults.
type Options struct {
	Debounce     time.Duration
	FetchTimeout time.Duration
	Notifier     notify.Notifier
	Audit        audit.Recorder
	Logger       *zap.Logger
}

// Controller keeps a remote-backed, filterable, paginated view of one screen.
// Overlapping fetches are not fenced: the last response to arrive wins.
type Controller struct {
	screen       Screen
	client       actionapi.Caller
	notifier     notify.Notifier
	audit        audit.Recorder
	logger       *zap.Logger
	debouncer    *debounce.Debouncer
	fetchTimeout time.Duration
	now          func() time.Time

	mu          sync.RWMutex
	filter      models.FilterState
	records     []models.Record
	serverStats map[string]any
	inflight    int
	lastErr     string
	fetchedAt   time.Time
}

// NewController wires a controller for the given screen.
func NewController(screen Screen, client actionapi.Caller, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Notifier == nil {
		opts.Notifier = discardNotifier{}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 30 * time.Second
	}
	if screen.Params == nil {
		screen.Params = func(models.FilterState) map[string]any { return map[string]any{} }
	}

	return &Controller{
		screen:       screen,
		client:       client,
		notifier:     opts.Notifier,
		audit:        opts.Audit,
		logger:       opts.Logger,
		debouncer:    debounce.New(opts.Debounce),
		fetchTimeout: opts.FetchTimeout,
		now:          time.Now,
		filter:       models.NewFilterState(screen.PageSize),
		records:      []models.Record{},
	}
}

// Name returns the screen name.
func (c *Controller) Name() string { return c.screen.Name }

// Writable reports whether the screen supports mutations.
func (c *Controller) Writable() bool { return c.screen.Mutations != nil }

// SetFilter merges patch into the filter. Changing anything but the page
// resets the page to 1 and arms a debounced fetch. A page-only change cancels
// any pending debounce and fetches immediately; its error is returned.
func (c *Controller) SetFilter(ctx context.Context, patch models.FilterPatch) error {
	c.mu.Lock()
	next, filterChanged, pageChanged := c.filter.Merge(patch)
	c.filter = next
	c.mu.Unlock()

	switch {
	case filterChanged:
		c.debouncer.Trigger(c.debouncedFetch)
		return nil
	case pageChanged:
		c.debouncer.Cancel()
		return c.Fetch(ctx)
	default:
		return nil
	}
}

// Refresh fetches immediately, dropping any pending debounced fetch.
func (c *Controller) Refresh(ctx context.Context) error {
	c.debouncer.Cancel()
	return c.Fetch(ctx)
}

// Fetch sends the current filter to the screen's action and replaces the
// record set with the response data. On any failure the record set is
// emptied, the error text is kept for the view and an error notification is
// raised. The returned error is informational; state is consistent either way.
func (c *Controller) Fetch(ctx context.Context) error {
	c.mu.Lock()
	filter := c.filter
	c.inflight++
	c.mu.Unlock()

	action := c.screen.Action(filter)
	params := c.screen.Params(filter)

	resp, err := c.client.Call(ctx, action, params)
	var records []models.Record
	if err == nil {
		records, err = resp.Records()
	}
	var serverStats map[string]any
	if err == nil {
		serverStats = c.loadServerStats(ctx, resp, params)
	}

	c.mu.Lock()
	c.inflight--
	if err != nil {
		c.records = []models.Record{}
		c.serverStats = nil
		c.lastErr = errorText(err)
	} else {
		c.records = records
		c.serverStats = serverStats
		c.lastErr = ""
		c.fetchedAt = c.now().UTC()
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("fetch failed", zap.String("action", action), zap.Error(err))
		c.notifier.Notify(c.screen.Name, models.LevelError, errorText(err))
		return fmt.Errorf("fetch %s: %w", c.screen.Name, err)
	}

	c.logger.Debug("fetch completed", zap.String("action", action), zap.Int("records", len(records)))
	return nil
}

// Create validates and submits a new adjustment, then resynchronises.
func (c *Controller) Create(ctx context.Context, adj models.Adjustment) error {
	m, err := c.mutations()
	if err != nil {
		return err
	}

	adj.ID = ""
	if err := validator.ValidateStruct(adj); err != nil {
		c.rejectLocally(err)
		return err
	}

	return c.mutate(ctx, m, m.Create, "", adj.Params(), "Adjustment created")
}

// Update validates and submits changes to an existing adjustment, then
// resynchronises.
func (c *Controller) Update(ctx context.Context, adj models.Adjustment) error {
	m, err := c.mutations()
	if err != nil {
		return err
	}

	if adj.ID == "" {
		verr := validator.Required("id")
		c.rejectLocally(verr)
		return verr
	}
	if err := validator.ValidateStruct(adj); err != nil {
		c.rejectLocally(err)
		return err
	}

	return c.mutate(ctx, m, m.Update, adj.ID, adj.Params(), "Adjustment updated")
}

// Delete removes a record after confirm approves it, then resynchronises.
// No request is sent without confirmation.
func (c *Controller) Delete(ctx context.Context, id string, confirm Confirmer) error {
	m, err := c.mutations()
	if err != nil {
		return err
	}

	if id == "" {
		verr := validator.Required("id")
		c.rejectLocally(verr)
		return verr
	}

	prompt := fmt.Sprintf("Delete %s %s?", m.Entity, id)
	if confirm == nil || !confirm.Confirm(ctx, prompt) {
		c.notifier.Notify(c.screen.Name, models.LevelInfo, "Deletion cancelled")
		return ErrNotConfirmed
	}

	return c.mutate(ctx, m, m.Delete, id, map[string]any{"id": id}, "Adjustment deleted")
}

// View returns the filtered page slice and statistics of the current record set.
func (c *Controller) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	filtered := ApplyLocalFilter(c.records, c.filter, c.screen.SearchFields)

	v := View{
		Screen:      c.screen.Name,
		Filter:      c.filter,
		Page:        PageSlice(filtered, c.filter.Page, c.filter.PageSize),
		Stats:       DerivedStats(filtered),
		ServerStats: c.serverStats,
		Loading:     c.inflight > 0,
		Error:       c.lastErr,
		RecordCount: len(c.records),
	}
	if !c.fetchedAt.IsZero() {
		at := c.fetchedAt
		v.FetchedAt = &at
	}
	return v
}

// Records returns the record set held since the last fetch, unfiltered.
func (c *Controller) Records() []models.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Filtered returns the record set after client-side filtering.
func (c *Controller) Filtered() []models.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	filtered := ApplyLocalFilter(c.records, c.filter, c.screen.SearchFields)
	out := make([]models.Record, len(filtered))
	copy(out, filtered)
	return out
}

// Filter returns the current filter state.
func (c *Controller) Filter() models.FilterState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight > 0
}

// Close drops any pending debounced fetch.
func (c *Controller) Close() {
	c.debouncer.Cancel()
}

func (c *Controller) debouncedFetch() {
	ctx, cancel := context.WithTimeout(context.Background(), c.fetchTimeout)
	defer cancel()
	_ = c.Fetch(ctx)
}

func (c *Controller) loadServerStats(ctx context.Context, resp *actionapi.Response, params map[string]any) map[string]any {
	if c.screen.StatsField != "" {
		return resp.ExtraMap(c.screen.StatsField)
	}
	if c.screen.StatsAction == "" {
		return nil
	}

	statsResp, err := c.client.Call(ctx, c.screen.StatsAction, params)
	if err != nil {
		c.logger.Warn("server stats unavailable", zap.String("action", c.screen.StatsAction), zap.Error(err))
		return nil
	}

	stats := map[string]any{}
	if err := statsResp.Decode(&stats); err != nil {
		c.logger.Warn("server stats malformed", zap.String("action", c.screen.StatsAction), zap.Error(err))
		return nil
	}
	return stats
}

func (c *Controller) mutations() (*Mutations, error) {
	if c.screen.Mutations == nil {
		return nil, fmt.Errorf("%s: %w", c.screen.Name, ErrReadOnly)
	}
	return c.screen.Mutations, nil
}

func (c *Controller) mutate(ctx context.Context, m *Mutations, action, id string, params map[string]any, fallback string) error {
	resp, err := c.client.Call(ctx, action, params)
	if err != nil {
		c.logger.Warn("mutation failed", zap.String("action", action), zap.Error(err))
		c.notifier.Notify(c.screen.Name, models.LevelError, errorText(err))
		return fmt.Errorf("%s: %w", action, err)
	}

	if id == "" {
		id = createdID(resp)
	}

	message := resp.Message
	if message == "" {
		message = fallback
	}
	c.notifier.Notify(c.screen.Name, models.LevelSuccess, message)

	if c.audit != nil {
		c.audit.Record(models.AuditEntry{
			Action:   action,
			Entity:   m.Entity,
			EntityID: id,
			Details:  params,
		})
	}

	// The mutation already succeeded: resync even if the caller goes away.
	// A failed resync is surfaced by Fetch itself.
	syncCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
	defer cancel()
	_ = c.Fetch(syncCtx)
	return nil
}

func (c *Controller) rejectLocally(err error) {
	c.notifier.Notify(c.screen.Name, models.LevelError, err.Error())
}

// createdID reads the id assigned by the backend, when data carries one.
func createdID(resp *actionapi.Response) string {
	var data struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil || len(data.ID) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(data.ID, &s); err == nil {
		return s
	}
	return string(data.ID)
}

func errorText(err error) string {
	var apiErr *actionapi.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}

type discardNotifier struct{}

func (discardNotifier) Notify(string, models.NotificationLevel, string) {}
