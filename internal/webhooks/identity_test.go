package webhooks

import "testing"

func TestParseUserEvent(t *testing.T) {
	payload := []byte(`{
		"type": "user.created",
		"data": {
			"id": "user_2abc",
			"first_name": "Alice",
			"last_name": "Nguyen",
			"email_addresses": [{"email_address": "alice@example.com"}]
		}
	}`)

	eventType, data, err := ParseUserEvent(payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if eventType != EventUserCreated {
		t.Errorf("type = %q, want %q", eventType, EventUserCreated)
	}
	if data.ID != "user_2abc" {
		t.Errorf("id = %q", data.ID)
	}
	if data.PrimaryEmail() != "alice@example.com" {
		t.Errorf("email = %q", data.PrimaryEmail())
	}
	if data.FullName() != "Alice Nguyen" {
		t.Errorf("name = %q", data.FullName())
	}
}

func TestParseUserEventPartialNames(t *testing.T) {
	eventType, data, err := ParseUserEvent([]byte(`{"type":"user.updated","data":{"id":"user_1","first_name":"Bo"}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if eventType != EventUserUpdated {
		t.Errorf("type = %q", eventType)
	}
	if data.FullName() != "Bo" {
		t.Errorf("name should trim missing last name, got %q", data.FullName())
	}
	if data.PrimaryEmail() != "" {
		t.Errorf("missing addresses should yield empty email, got %q", data.PrimaryEmail())
	}
}

func TestParseUserEventMalformed(t *testing.T) {
	if _, _, err := ParseUserEvent([]byte(`{"type":`)); err == nil {
		t.Fatal("expected error on malformed payload")
	}
}
