package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/pkg/clients/actionapi"
)

type call struct {
	action string
	params map[string]any
}

// fakeCaller answers per action and records every call.
type fakeCaller struct {
	mu        sync.Mutex
	calls     []call
	responses map[string]func(params map[string]any) (*actionapi.Response, error)
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{responses: map[string]func(map[string]any) (*actionapi.Response, error){}}
}

func (f *fakeCaller) on(action string, fn func(params map[string]any) (*actionapi.Response, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[action] = fn
}

func (f *fakeCaller) Call(ctx context.Context, action string, params map[string]any) (*actionapi.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{action: action, params: params})
	fn := f.responses[action]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", actionapi.ErrTransport, err)
	}
	if fn == nil {
		return &actionapi.Response{Success: true}, nil
	}
	return fn(params)
}

func (f *fakeCaller) count(action string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.action == action {
			n++
		}
	}
	return n
}

func (f *fakeCaller) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeCaller) last(action string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].action == action {
			return f.calls[i].params
		}
	}
	return nil
}

func ok(t *testing.T, data any) *actionapi.Response {
	resp := &actionapi.Response{Success: true, Extra: map[string]json.RawMessage{}}
	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		resp.Data = raw
	}
	return resp
}

func records(t *testing.T, recs ...models.Record) *actionapi.Response {
	return ok(t, recs)
}

type recordedNotification struct {
	screen  string
	level   models.NotificationLevel
	message string
}

type fakeNotifier struct {
	mu    sync.Mutex
	items []recordedNotification
}

func (n *fakeNotifier) Notify(screen string, level models.NotificationLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, recordedNotification{screen, level, message})
}

func (n *fakeNotifier) lastMessage() (models.NotificationLevel, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.items) == 0 {
		return "", ""
	}
	last := n.items[len(n.items)-1]
	return last.level, last.message
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func (a *fakeAudit) Record(entry models.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func sampleRecords(n int) []models.Record {
	out := make([]models.Record, n)
	for i := range out {
		out[i] = models.Record{"id": float64(i + 1)}
	}
	return out
}
