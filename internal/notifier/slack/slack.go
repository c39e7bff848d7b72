package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/ligadomingo/roster-link/internal/metrics"
	"github.com/ligadomingo/roster-link/internal/notifier"
	"github.com/ligadomingo/roster-link/internal/roster"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendMergeSuggestionNotice implements the Notifier interface.
func (s *Notifier) SendMergeSuggestionNotice(suggestion roster.MergeSuggestion, profileName, registrantEmail string, dryRun bool) error {
	msg := s.formatMergeSuggestionNotice(suggestion, profileName, registrantEmail)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatMergeSuggestionNotice creates the Slack message for a pending merge suggestion using Block Kit.
func (s *Notifier) formatMergeSuggestionNotice(suggestion roster.MergeSuggestion, profileName, registrantEmail string) slack.Message {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject("plain_text", ":mag: Possible existing player", false, false),
	)
	body := slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf(
			"A new registration (*%s*) looks like it could be *%s* (score %d, %s).\nReview the suggestion in the admin panel before approving the pending profile.",
			registrantEmail, profileName, suggestion.Score, suggestion.Reason,
		), false, false),
		nil, nil,
	)
	ctxBlock := slack.NewContextBlock("",
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("suggestion `%s` · profile `%s`", suggestion.ID, suggestion.ProfileID), false, false),
	)
	return slack.NewBlockMessage(header, body, ctxBlock)
}
