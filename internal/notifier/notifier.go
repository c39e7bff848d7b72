package notifier

import "github.com/ligadomingo/roster-link/internal/roster"

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendMergeSuggestionNotice pings the admins when a medium-confidence
	// candidate was queued for manual review.
	SendMergeSuggestionNotice(suggestion roster.MergeSuggestion, profileName, registrantEmail string, dryRun bool) error
}
