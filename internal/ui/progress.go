// Package ui provides terminal output components for shopverse.
// This file implements the progress display shown during a checkout run.
package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/shopverse-dev/shopverse/internal/checkout"
	"github.com/shopverse-dev/shopverse/internal/money"
)

// LineState holds the display state of a single checkout line.
type LineState struct {
	ID          string
	Title       string
	Quantity    int
	AmountCents int64
	Status      checkout.Status
	Detail      string
}

// ProgressDisplay manages a terminal progress view over checkout
// attempts. When interactive it redraws in place; otherwise it prints
// one line per status transition, which is also the mode to use when
// something else (like a payment prompt) shares the terminal.
type ProgressDisplay struct {
	mu          sync.Mutex
	lines       []*LineState
	lineIndex   map[string]int
	started     bool
	interactive bool
	linesDrawn  int
	lastPrinted map[string]checkout.Status
}

// NewProgressDisplay creates a ProgressDisplay. Pass interactive=false
// when the terminal is shared with interleaved prompts.
func NewProgressDisplay(interactive bool) *ProgressDisplay {
	if interactive {
		interactive = term.IsTerminal(int(os.Stdout.Fd()))
	}
	return &ProgressDisplay{
		lineIndex:   make(map[string]int),
		lastPrinted: make(map[string]checkout.Status),
		interactive: interactive,
	}
}

// Start draws the initial display.
func (p *ProgressDisplay) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = true
	p.render()
}

// Observe applies a checkout attempt update, registering the line on
// first sight. Safe to use directly as an orchestrator update hook.
func (p *ProgressDisplay) Observe(a checkout.Attempt) {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx, ok := p.lineIndex[a.ID]
	if !ok {
		idx = len(p.lines)
		p.lineIndex[a.ID] = idx
		p.lines = append(p.lines, &LineState{
			ID:          a.ID,
			Title:       a.ProductName,
			Quantity:    a.Quantity,
			AmountCents: a.SubtotalCents,
		})
	}

	line := p.lines[idx]
	line.Status = a.Status
	switch a.Status {
	case checkout.StatusConfirmed:
		line.Detail = "payment " + a.PaymentRef
	case checkout.StatusFailed:
		line.Detail = a.Reason
	case checkout.StatusAwaitingGateway:
		line.Detail = "order " + a.GatewayOrderRef
	default:
		line.Detail = ""
	}

	if p.started {
		p.render()
	}
}

// Finish moves past the live area and prints a summary line.
func (p *ProgressDisplay) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.interactive && p.linesDrawn > 0 {
		fmt.Print("\n")
	}

	confirmed := 0
	failed := 0
	awaiting := 0
	for _, l := range p.lines {
		switch l.Status {
		case checkout.StatusConfirmed:
			confirmed++
		case checkout.StatusFailed:
			failed++
		case checkout.StatusAwaitingGateway, checkout.StatusVerifying:
			awaiting++
		}
	}

	total := len(p.lines)
	fmt.Printf("\nDone: %d/%d confirmed", confirmed, total)
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	if awaiting > 0 {
		fmt.Printf(", %d still with the gateway", awaiting)
	}
	fmt.Println()
}

// render draws or redraws the display.
func (p *ProgressDisplay) render() {
	if !p.interactive {
		p.renderTranscript()
		return
	}
	p.renderLive()
}

// renderLive redraws every line in place using ANSI escape codes.
func (p *ProgressDisplay) renderLive() {
	if p.linesDrawn > 0 {
		fmt.Printf("\033[%dA", p.linesDrawn)
	}

	var buf strings.Builder
	for _, line := range p.lines {
		buf.WriteString("\033[2K")
		buf.WriteString(formatLine(line))
		buf.WriteString("\n")
	}

	fmt.Print(buf.String())
	p.linesDrawn = len(p.lines)
}

// renderTranscript prints one line per status transition, skipping
// repeats so interleaved prompts stay readable.
func (p *ProgressDisplay) renderTranscript() {
	for _, line := range p.lines {
		if prev, seen := p.lastPrinted[line.ID]; seen && prev == line.Status {
			continue
		}
		fmt.Println(formatLinePlain(line))
		p.lastPrinted[line.ID] = line.Status
	}
}

// formatLine formats a single line with ANSI colors and status icons.
func formatLine(line *LineState) string {
	title := line.Title
	if len(title) > 40 {
		title = title[:37] + "..."
	}
	return fmt.Sprintf("  %s %s x%d %s  %s",
		statusIcon(line.Status), title, line.Quantity,
		money.Format(line.AmountCents), statusDetail(line))
}

// formatLinePlain formats a line for transcript output.
func formatLinePlain(line *LineState) string {
	out := fmt.Sprintf("[%s] %s x%d %s",
		line.Status, line.Title, line.Quantity, money.Format(line.AmountCents))
	if line.Detail != "" {
		out += " - " + line.Detail
	}
	return out
}

// statusIcon returns the status icon for a line.
func statusIcon(status checkout.Status) string {
	switch status {
	case checkout.StatusConfirmed:
		return "\033[32m✓\033[0m" // green check
	case checkout.StatusFailed:
		return "\033[31m✗\033[0m" // red X
	case checkout.StatusAwaitingGateway:
		return "\033[33m▸\033[0m" // yellow arrow
	case checkout.StatusVerifying:
		return "\033[33m⏳\033[0m" // yellow hourglass
	default:
		return "\033[90m○\033[0m" // dim circle
	}
}

// statusDetail returns the right-side detail text for a line.
func statusDetail(line *LineState) string {
	switch line.Status {
	case checkout.StatusConfirmed:
		return fmt.Sprintf("\033[32m[%s]\033[0m", line.Detail)
	case checkout.StatusFailed:
		return fmt.Sprintf("\033[31m[%s]\033[0m", line.Detail)
	case checkout.StatusAwaitingGateway:
		return fmt.Sprintf("\033[33m[awaiting %s]\033[0m", line.Detail)
	case checkout.StatusVerifying:
		return "\033[33m[verifying]\033[0m"
	default:
		return "\033[90m[pending]\033[0m"
	}
}
