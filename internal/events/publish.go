package events

import (
	"log/slog"
	"time"
)

// retryBaseDelay is the wait before the second attempt; each later wait doubles.
var retryBaseDelay = 50 * time.Millisecond

// backoff returns the wait after the given failed attempt (0-indexed).
func backoff(attempt int) time.Duration {
	return retryBaseDelay << attempt
}

// PublishWithRetry hands event to client, trying up to attempts times.
// A nil client is a no-op. The last error is returned once attempts run out;
// callers publish after commit and treat that error as advisory.
func PublishWithRetry(client EventPublisher, event Event, attempts int) error {
	if client == nil {
		return nil
	}

	log := slog.With("event_type", event.Type, "board_id", event.BoardID, "op_id", event.OpID)

	var err error
	for attempt := range attempts {
		if err = client.SendEvent(event); err == nil {
			if attempt > 0 {
				log.Debug("event published after retry", "attempt", attempt+1)
			}
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		wait := backoff(attempt)
		log.Debug("event publish failed, retrying", "attempt", attempt+1, "retry_in", wait, "error", err)
		time.Sleep(wait)
	}

	if err != nil {
		log.Warn("event publish failed", "attempts", attempts, "error", err)
	}
	return err
}
