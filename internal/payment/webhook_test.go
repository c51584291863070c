package payment

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "whsec_test"

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	now := time.Unix(1_760_000_000, 0)
	valid := SignPayload(body, testSecret, now)

	if err := VerifySignature(valid, body, testSecret, 5*time.Minute, now.Add(time.Minute)); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}

	tests := []struct {
		name   string
		header string
		body   []byte
		secret string
		now    time.Time
	}{
		{"tampered body", valid, []byte(`{"id":"evt_2"}`), testSecret, now},
		{"wrong secret", valid, body, "whsec_other", now},
		{"expired", valid, body, testSecret, now.Add(10 * time.Minute)},
		{"from the future", valid, body, testSecret, now.Add(-10 * time.Minute)},
		{"missing v1", "t=1760000000", body, testSecret, now},
		{"garbage", "nonsense", body, testSecret, now},
		{"bad timestamp", "t=abc,v1=00", body, testSecret, now},
		{"no secret configured", valid, body, "", now},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := VerifySignature(tt.header, tt.body, tt.secret, 5*time.Minute, tt.now); !errors.Is(err, ErrInvalidSignature) {
				t.Fatalf("error = %v, want ErrInvalidSignature", err)
			}
		})
	}
}

func TestVerifySignatureAcceptsAnyMatchingV1(t *testing.T) {
	body := []byte(`{}`)
	now := time.Unix(1_760_000_000, 0)
	header := "t=1760000000,v1=deadbeef,v1=" + computeSignature("1760000000", body, testSecret)
	if err := VerifySignature(header, body, testSecret, time.Minute, now); err != nil {
		t.Fatalf("header with a rotated secret signature rejected: %v", err)
	}
}

func TestParseEvent(t *testing.T) {
	intentEvent := []byte(`{
		"id": "evt_1",
		"type": "payment_intent.succeeded",
		"created": 1760000000,
		"data": {"object": {"id": "pi_123", "object": "payment_intent", "metadata": {"order_id": "order-1"}}}
	}`)
	ev, err := ParseEvent(intentEvent)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if ev.ID != "evt_1" || ev.Type != "payment_intent.succeeded" || ev.IntentID != "pi_123" || ev.OrderID != "order-1" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if !ev.Created.Equal(time.Unix(1_760_000_000, 0)) {
		t.Fatalf("created = %v", ev.Created)
	}

	chargeEvent := []byte(`{"id":"evt_2","type":"charge.refunded","data":{"object":{"id":"ch_9","object":"charge","payment_intent":"pi_123","metadata":{}}}}`)
	ev, err = ParseEvent(chargeEvent)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if ev.IntentID != "pi_123" {
		t.Fatalf("charge events should point at their intent, got %q", ev.IntentID)
	}

	for _, bad := range []string{`not json`, `{"type":"x"}`, `{"id":"evt"}`} {
		if _, err := ParseEvent([]byte(bad)); !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("ParseEvent(%s) error = %v, want ErrInvalidPayload", bad, err)
		}
	}
}
