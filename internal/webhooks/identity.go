// Package webhooks models the lifecycle events the identity provider
// delivers. Signature math is delegated to the provider's signing library.
package webhooks

import (
	"encoding/json"
	"net/http"
	"strings"

	svix "github.com/svix/svix-webhooks/go"
)

const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Event is the signed envelope delivered by the provider.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// UserData is the account payload carried by user.* events.
type UserData struct {
	ID             string         `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
}

type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

func (d UserData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}

func (d UserData) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// ParseUserEvent decodes the envelope and its user payload.
func ParseUserEvent(payload []byte) (string, UserData, error) {
	var evt Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return "", UserData{}, err
	}

	var data UserData
	if len(evt.Data) > 0 {
		if err := json.Unmarshal(evt.Data, &data); err != nil {
			return "", UserData{}, err
		}
	}
	return evt.Type, data, nil
}

// Verifier checks webhook signatures. Faked in handler tests.
type Verifier interface {
	Verify(payload []byte, headers http.Header) error
}

type svixVerifier struct {
	wh *svix.Webhook
}

// NewVerifier builds a svix-backed verifier from the endpoint secret.
func NewVerifier(secret string) (Verifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, err
	}
	return &svixVerifier{wh: wh}, nil
}

func (v *svixVerifier) Verify(payload []byte, headers http.Header) error {
	return v.wh.Verify(payload, headers)
}
