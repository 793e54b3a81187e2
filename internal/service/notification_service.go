package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/pet-service/internal/config"
	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/repository"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(domain.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(domain.EventUserPasswordChanged, n.handlePasswordChanged)
	n.dispatcher.Subscribe(domain.EventPetCreated, n.handlePetCreated)
	n.dispatcher.Subscribe(domain.EventPetOwnershipTransferred, n.handleOwnershipTransferred)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event domain.Event) error {
	n.logger.Info("UserRegistered", zap.String("user_id", event.AggregateID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePasswordChanged(ctx context.Context, event domain.Event) error {
	n.logger.Info("UserPasswordChanged", zap.String("user_id", event.AggregateID))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePetCreated(ctx context.Context, event domain.Event) error {
	n.logger.Info("PetCreated", zap.String("pet_id", event.AggregateID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleOwnershipTransferred(ctx context.Context, event domain.Event) error {
	n.logger.Info("PetOwnershipTransferred", zap.String("pet_id", event.AggregateID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// SendPasswordReset emails the reset token to the account holder. The
// stub logs the delivery; the token must never appear above Debug level.
func (n *NotificationService) SendPasswordReset(ctx context.Context, user *domain.User, token *repository.PasswordResetToken) {
	n.logger.Info("PasswordResetRequested", zap.String("user_id", user.ID))
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendPasswordResetEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", user.Email),
		zap.String("token", token.Token),
		zap.Time("expires_at", token.ExpiresAt))
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event domain.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("aggregate_id", event.AggregateID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event domain.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("aggregate_id", event.AggregateID),
		zap.String("event_type", string(event.Type)))
}
