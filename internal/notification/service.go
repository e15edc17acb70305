package notification

import (
	"context"

	"claimdesk_backend/internal/events"
	"claimdesk_backend/platform/logger"
)

// Service listens for claim lifecycle events and emails the configured
// recipient. Send failures are logged; they never fail the publishing flow.
type Service struct {
	sender Sender
	to     string
	log    *logger.Logger
}

// NewService creates a notification service.
func NewService(sender Sender, notifyAddress string, log *logger.Logger) *Service {
	return &Service{sender: sender, to: notifyAddress, log: log}
}

// RegisterHandlers subscribes the notification handlers on the event bus.
func (s *Service) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.ClaimAssembled{}.EventName(), events.HandlerFunc(s.onClaimAssembled))
	bus.Subscribe(events.ClaimFinalized{}.EventName(), events.HandlerFunc(s.onClaimFinalized))
}

func (s *Service) onClaimAssembled(ctx context.Context, e events.Event) error {
	evt, ok := e.(events.ClaimAssembled)
	if !ok {
		return nil
	}

	data := ClaimAssembledEmailData{
		baseEmailData: baseEmailData{
			Title:   "Claim draft ready",
			Heading: "Claim draft ready",
		},
		ClaimName:      evt.Name,
		IncidentType:   evt.IncidentType,
		ItemCount:      evt.ItemCount,
		TotalFormatted: formatCurrencyUSD(evt.TotalValue),
	}
	if err := s.sender.SendClaimAssembledEmail(ctx, s.to, data); err != nil {
		s.log.Error("claim assembled email failed", "claimId", evt.ClaimID.String(), "error", err)
		return err
	}
	return nil
}

func (s *Service) onClaimFinalized(ctx context.Context, e events.Event) error {
	evt, ok := e.(events.ClaimFinalized)
	if !ok {
		return nil
	}

	data := ClaimFinalizedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Claim submitted",
			Heading: "Claim submitted",
		},
		ClaimName:      evt.Name,
		IncidentType:   evt.IncidentType,
		ItemCount:      evt.ItemCount,
		TotalFormatted: formatCurrencyUSD(evt.TotalValue),
	}
	if err := s.sender.SendClaimFinalizedEmail(ctx, s.to, data); err != nil {
		s.log.Error("claim finalized email failed", "claimId", evt.ClaimID.String(), "error", err)
		return err
	}
	return nil
}
