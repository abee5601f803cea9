package accounts

import "github.com/go-monolith/mono/pkg/helper"

// CustomerProvisionedEvent is published after a customer and its login
// identity are created. It carries the one-time password so the mailer can
// send the welcome email without the provisioning call waiting on SMTP.
type CustomerProvisionedEvent struct {
	CustomerID   string `json:"customer_id"`
	BusinessName string `json:"business_name"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email"`
	TempPassword string `json:"temp_password"`
}

// CustomerProvisionedV1 is the typed event definition for customer
// provisioning.
var CustomerProvisionedV1 = helper.EventDefinition[CustomerProvisionedEvent]("accounts", "CustomerProvisioned", "v1")
