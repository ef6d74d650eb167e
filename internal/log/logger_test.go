package log

import (
	"testing"
)

func TestAppendAndReadAll(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events := []LogEvent{
		{Event: EventLogin, Identity: "ada@example.com", Role: "SHOPPER"},
		{Event: EventBasketAdd, ProductID: "p1", Quantity: 2},
		{Event: EventCheckoutStarted, Lines: 1, AmountCents: 500},
	}
	for _, e := range events {
		if err := logger.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("got %d events, want %d", len(got), len(events))
	}
	for i, e := range events {
		if got[i].Event != e.Event {
			t.Errorf("event %d = %q, want %q", i, got[i].Event, e.Event)
		}
		if got[i].Time.IsZero() {
			t.Errorf("event %d has zero time, Append should stamp it", i)
		}
	}
}

func TestReadAllMissingFile(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll on missing file: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
}
