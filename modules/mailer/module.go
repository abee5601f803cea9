package mailer

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/reganthompson23/wholesaleportal/modules/accounts"
)

// MailerModule sends welcome emails in response to provisioning events.
// Delivery is strictly best-effort: a failed send is logged, never retried,
// and never surfaced to the publisher.
type MailerModule struct {
	mailer *Mailer
}

// Compile-time interface checks.
var _ mono.Module = (*MailerModule)(nil)
var _ mono.EventConsumerModule = (*MailerModule)(nil)
var _ mono.HealthCheckableModule = (*MailerModule)(nil)

// NewModule creates a new MailerModule.
func NewModule() *MailerModule {
	return &MailerModule{}
}

// Name returns the module name.
func (m *MailerModule) Name() string {
	return "mailer"
}

// Start initializes the SMTP dialer from environment configuration.
func (m *MailerModule) Start(_ context.Context) error {
	m.mailer = NewMailerFromEnv()
	if m.mailer.Enabled() {
		log.Println("[mailer] Module started with SMTP delivery enabled")
	} else {
		log.Println("[mailer] Module started without SMTP config, emails will be logged and dropped")
	}
	return nil
}

// Stop stops the mailer module.
func (m *MailerModule) Stop(_ context.Context) error {
	log.Println("[mailer] Module stopped")
	return nil
}

// Health performs a health check on the mailer module.
func (m *MailerModule) Health(_ context.Context) mono.HealthStatus {
	if m.mailer == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "mailer not initialized",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"smtp_enabled": m.mailer.Enabled(),
		},
	}
}

// RegisterEventConsumers registers event handlers for provisioning events.
func (m *MailerModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, accounts.CustomerProvisionedV1, m.handleCustomerProvisioned, m); err != nil {
		return fmt.Errorf("failed to register CustomerProvisioned consumer: %w", err)
	}

	log.Printf("[mailer] Registered event consumers: CustomerProvisioned")
	return nil
}

// handleCustomerProvisioned sends the welcome email. Errors are swallowed so
// the event is never redelivered because of a flaky SMTP server.
func (m *MailerModule) handleCustomerProvisioned(_ context.Context, event accounts.CustomerProvisionedEvent, _ *mono.Msg) error {
	if err := m.mailer.SendWelcome(event.Email, event.ContactName, event.BusinessName, event.TempPassword); err != nil {
		log.Printf("[mailer] Failed to send welcome email to %s: %v", event.Email, err)
		return nil
	}

	log.Printf("[mailer] Welcome email sent to %s", event.Email)
	return nil
}
