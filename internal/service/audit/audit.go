package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/pkg/clients/actionapi"
)

// Recorder accepts activity entries without blocking the caller.
type Recorder interface {
	Record(entry models.AuditEntry)
}

// Service sends activity entries to the backend's log_activity action.
// Delivery is best effort: failures are logged and never reach the caller.
type Service struct {
	client  actionapi.Caller
	timeout time.Duration
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewService wires an audit service.
func NewService(client actionapi.Caller, timeout time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{client: client, timeout: timeout, logger: logger}
}

// Record dispatches the entry on its own goroutine and returns immediately.
func (s *Service) Record(entry models.AuditEntry) {
	if entry.CorrelationID == "" {
		entry.CorrelationID = uuid.NewString()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		params := map[string]any{
			"correlation_id": entry.CorrelationID,
			"activity":       entry.Action,
			"entity":         entry.Entity,
			"entity_id":      entry.EntityID,
		}
		if entry.Details != nil {
			params["details"] = entry.Details
		}

		if _, err := s.client.Call(ctx, actionapi.ActionLogActivity, params); err != nil {
			s.logger.Warn("activity log failed",
				zap.String("activity", entry.Action),
				zap.String("correlation_id", entry.CorrelationID),
				zap.Error(err))
			return
		}
		s.logger.Debug("activity logged", zap.String("activity", entry.Action))
	}()
}

// Wait blocks until every dispatched entry has completed.
func (s *Service) Wait() {
	s.wg.Wait()
}
