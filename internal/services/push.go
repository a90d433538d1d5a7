package services

import (
	"context"
	"fmt"

	"outvibe-backend/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/certificate"
	"github.com/sideshow/apns2/payload"
)

// PushService sends APNs notifications to partner devices. A nil client
// (no certificate configured) turns every send into a no-op.
type PushService struct {
	client *apns2.Client
	topic  string
}

// NewPushService creates a push service from APNs configuration.
// Delivery is disabled when no certificate path is configured.
func NewPushService(cfg config.APNsConfig) (*PushService, error) {
	if cfg.CertPath == "" {
		return &PushService{}, nil
	}

	cert, err := certificate.FromP12File(cfg.CertPath, cfg.CertPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs certificate: %w", err)
	}

	client := apns2.NewClient(cert).Development()
	if cfg.Production {
		client = apns2.NewClient(cert).Production()
	}

	return &PushService{
		client: client,
		topic:  cfg.Topic,
	}, nil
}

// Notify sends an alert notification to a device token. Failures are
// logged, never surfaced: push delivery is best-effort.
func (s *PushService) Notify(ctx context.Context, deviceToken *string, title, body string) {
	if s.client == nil || deviceToken == nil || *deviceToken == "" {
		return
	}

	notification := &apns2.Notification{
		DeviceToken: *deviceToken,
		Topic:       s.topic,
		Payload:     payload.NewPayload().AlertTitle(title).AlertBody(body).Sound("default"),
	}

	res, err := s.client.PushWithContext(ctx, notification)
	if err != nil {
		log.Error().Err(err).Msg("Failed to send push notification")
		return
	}
	if !res.Sent() {
		log.Warn().Str("reason", res.Reason).Msg("Push notification rejected")
	}
}

// NotifyInviteAccepted tells the inviter's device that a friend joined
func (s *PushService) NotifyInviteAccepted(ctx context.Context, deviceToken *string, friendName string) {
	s.Notify(ctx, deviceToken, "Invite accepted", fmt.Sprintf("%s joined your outing session", friendName))
}

// NotifySessionCompleted tells the partner's device the itinerary is ready
func (s *PushService) NotifySessionCompleted(ctx context.Context, deviceToken *string) {
	s.Notify(ctx, deviceToken, "Itinerary ready", "Your joint outing itinerary has been generated")
}
