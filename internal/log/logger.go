// Package log provides structured event logging.
// This file appends JSON events to log.jsonl.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event type constants.
const (
	EventLogin            = "login"
	EventLogout           = "logout"
	EventSessionExpired   = "session_expired"
	EventBasketAdd        = "basket_add"
	EventBasketSetQty     = "basket_set_quantity"
	EventBasketRemove     = "basket_remove"
	EventBasketClear      = "basket_clear"
	EventCheckoutStarted  = "checkout_started"
	EventGatewayFailed    = "gateway_failed"
	EventOrderCreated     = "order_created"
	EventLineFailed       = "line_failed"
	EventPaymentVerifying = "payment_verifying"
	EventPaymentConfirmed = "payment_confirmed"
	EventCheckoutComplete = "checkout_complete"
)

// LogEvent represents a single structured event written to the log.
type LogEvent struct {
	Time        time.Time `json:"time"`
	Event       string    `json:"event"`
	Identity    string    `json:"identity,omitempty"`
	Role        string    `json:"role,omitempty"`
	ProductID   string    `json:"product,omitempty"`
	ProductName string    `json:"product_name,omitempty"`
	Quantity    int       `json:"quantity,omitempty"`
	AmountCents int64     `json:"amount_cents,omitempty"`
	AttemptID   string    `json:"attempt,omitempty"`
	OrderRef    string    `json:"order_ref,omitempty"`
	PaymentRef  string    `json:"payment_ref,omitempty"`
	Lines       int       `json:"lines,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Logger writes append-only JSONL events to a log file.
type Logger struct {
	path string
	mu   sync.Mutex
}

// NewLogger creates a Logger that writes to .shopverse/log.jsonl inside dir.
// Creates the .shopverse/ directory if it does not already exist.
// Does not truncate an existing log file.
func NewLogger(dir string) (*Logger, error) {
	stateDir := filepath.Join(dir, ".shopverse")
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("create .shopverse directory: %w", err)
	}

	return &Logger{
		path: filepath.Join(stateDir, "log.jsonl"),
	}, nil
}

// Path returns the log file location.
func (l *Logger) Path() string {
	return l.path
}

// Append writes a single LogEvent as one JSON line to the log file.
// If event.Time is the zero value, it is automatically set to time.Now().UTC().
// The file is opened in append mode, written to, and then closed.
// Thread-safe via mutex.
func (l *Logger) Append(event LogEvent) error {
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write log event: %w", err)
	}

	return nil
}

// ReadAll reads and parses all events from the log file.
// Returns an empty slice (not an error) if the file does not exist.
func (l *Logger) ReadAll() ([]LogEvent, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []LogEvent{}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var events []LogEvent
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event LogEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	return events, nil
}
