package worker

import (
	"github.com/spec-kit/pet-service/internal/service"
)

// StartEventWorkers registers the audit and notification subscribers on
// the dispatcher. Called once at startup, before the server accepts
// traffic.
func StartEventWorkers(auditService *service.AuditService, notificationService *service.NotificationService) {
	if auditService != nil {
		auditService.RegisterHandlers()
	}
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
}
