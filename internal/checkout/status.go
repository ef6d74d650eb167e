// Package checkout turns basket lines into confirmed orders, one line
// at a time, against an external payment gateway.
package checkout

// Status is the per-line attempt state.
type Status string

const (
	StatusPending         Status = "PENDING"
	StatusAwaitingGateway Status = "AWAITING_GATEWAY"
	StatusVerifying       Status = "VERIFYING"
	StatusConfirmed       Status = "CONFIRMED"
	StatusFailed          Status = "FAILED"
)

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusFailed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

// legalTransitions encodes the attempt state machine. Failed is
// reachable from every non-terminal state.
var legalTransitions = map[Status][]Status{
	StatusPending:         {StatusAwaitingGateway, StatusFailed},
	StatusAwaitingGateway: {StatusVerifying, StatusFailed},
	StatusVerifying:       {StatusConfirmed, StatusFailed},
}

// CanTransitionTo reports whether moving from one status to another is
// legal under the attempt state machine.
func CanTransitionTo(from, to Status) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
