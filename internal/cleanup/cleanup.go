// Package cleanup implements pruning of the append-only event log.
package cleanup

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// logEvent is the slice of an event line pruning cares about.
type logEvent struct {
	Time time.Time `json:"time"`
}

// PruneByAge rewrites the event log at logPath keeping only events
// newer than maxAgeDays. If dryRun is true the file is left untouched
// and only the would-be-removed count is returned. A missing log file
// prunes nothing.
func PruneByAge(logPath string, maxAgeDays int, dryRun bool) (int, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -maxAgeDays)
	return prune(logPath, dryRun, func(events []json.RawMessage, times []time.Time) []json.RawMessage {
		var kept []json.RawMessage
		for i, raw := range events {
			if !times[i].Before(cutoff) {
				kept = append(kept, raw)
			}
		}
		return kept
	})
}

// PruneKeepRecent rewrites the event log keeping only the most recent
// keep events. If dryRun is true the file is left untouched.
func PruneKeepRecent(logPath string, keep int, dryRun bool) (int, error) {
	return prune(logPath, dryRun, func(events []json.RawMessage, _ []time.Time) []json.RawMessage {
		if len(events) <= keep {
			return events
		}
		return events[len(events)-keep:]
	})
}

// prune reads all events, applies the filter, and atomically replaces
// the log file with the kept lines. Returns the removed count.
func prune(logPath string, dryRun bool, filter func([]json.RawMessage, []time.Time) []json.RawMessage) (int, error) {
	f, err := os.Open(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("opening event log: %w", err)
	}

	var events []json.RawMessage
	var times []time.Time
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev logEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			// Malformed lines are dropped with the prune.
			continue
		}
		raw := make(json.RawMessage, len(line))
		copy(raw, line)
		events = append(events, raw)
		times = append(times, ev.Time)
	}
	if scanErr := scanner.Err(); scanErr != nil {
		_ = f.Close()
		return 0, fmt.Errorf("reading event log: %w", scanErr)
	}
	_ = f.Close()

	kept := filter(events, times)
	removed := len(events) - len(kept)
	if dryRun || removed == 0 {
		return removed, nil
	}

	tmp := logPath + ".tmp"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("creating temp log: %w", err)
	}
	for _, raw := range kept {
		if _, err := out.Write(append(raw, '\n')); err != nil {
			_ = out.Close()
			_ = os.Remove(tmp)
			return 0, fmt.Errorf("writing temp log: %w", err)
		}
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("closing temp log: %w", err)
	}
	if err := os.Rename(tmp, logPath); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("replacing event log: %w", err)
	}

	return removed, nil
}
