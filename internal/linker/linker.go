package linker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ligadomingo/roster-link/internal/audit"
	"github.com/ligadomingo/roster-link/internal/matcher"
	"github.com/ligadomingo/roster-link/internal/metrics"
	"github.com/ligadomingo/roster-link/internal/notifier"
	"github.com/ligadomingo/roster-link/internal/playerid"
	"github.com/ligadomingo/roster-link/internal/roster"
)

// Linker resolves a newly authenticated user against the roster: via claim
// token first, then via the matching service, finally settling on a pending
// profile. It holds no state of its own; all durable state lives in the store.
type Linker struct {
	store    Store
	matcher  matcher.MatcherClient
	audit    audit.Recorder
	notifier notifier.Notifier
	metrics  metrics.Metrics
	counters metrics.MetricsStore
}

// New creates a new Linker.
func New(store Store, mc matcher.MatcherClient, recorder audit.Recorder, nf notifier.Notifier, m metrics.Metrics, counters metrics.MetricsStore) *Linker {
	return &Linker{
		store:    store,
		matcher:  mc,
		audit:    recorder,
		notifier: nf,
		metrics:  m,
		counters: counters,
	}
}

// Resolve runs one resolution pass for a registration. It is safe to retry:
// an identity that already resolved short-circuits without touching state.
func (l *Linker) Resolve(ctx context.Context, req ResolveRequest) (*Result, error) {
	start := time.Now()
	defer func() {
		l.metrics.ObserveResolutionDuration(time.Since(start).Seconds())
	}()

	req.Email = strings.TrimSpace(req.Email)
	if req.AuthUserID == "" || req.Email == "" {
		return nil, &Error{Kind: KindValidation, Message: MsgMissingFields}
	}

	existing, err := l.store.GetLinkedProfile(req.AuthUserID)
	if err != nil {
		return nil, &Error{Kind: KindPersistence, Message: MsgRegistrationFailed, Err: err}
	}
	if existing != nil {
		log.Info("Identity already resolved, nothing to do", "userID", req.AuthUserID, "profileID", existing.ID)
		return alreadyResolvedResult(existing), nil
	}

	if token := strings.TrimSpace(req.ClaimToken); token != "" {
		result, err := l.tryTokenClaim(token, req)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}

	best := l.bestCandidate(ctx, req)

	if best != nil && best.MatchScore >= AutoLinkThreshold {
		// During self-registration the registrant is their own actor.
		linked, err := l.store.LinkProfileToUser(best.ProfileID, req.AuthUserID, req.AuthUserID)
		if err != nil {
			return nil, &Error{Kind: KindPersistence, Message: MsgRegistrationFailed, Err: err}
		}
		if linked {
			l.cleanupPlaceholder(req.AuthUserID, best.ProfileID)
			l.finish(OutcomeAutoLink, req, best.ProfileID, map[string]any{
				"score":  best.MatchScore,
				"reason": best.MatchReason,
			})
			return &Result{
				Outcome:    OutcomeAutoLink,
				Linked:     true,
				ProfileID:  best.ProfileID,
				PlayerID:   best.PlayerID,
				MatchScore: best.MatchScore,
				Message:    MsgAutoLinked,
			}, nil
		}
		// Lost the rebind race: the candidate now belongs to someone else.
		// This caller degrades to the pending path, it is not an error.
		log.Warn("Lost auto-link race, degrading to pending profile", "userID", req.AuthUserID, "profileID", best.ProfileID)
		best = nil
	}

	var suggestion *matcher.Candidate
	if best != nil && best.MatchScore >= ReviewThreshold {
		suggestion = best
	}
	return l.settlePending(req, suggestion)
}

// tryTokenClaim attempts the deterministic token path. A token that is
// unknown or already claimed falls through silently (nil result, nil error).
func (l *Linker) tryTokenClaim(token string, req ResolveRequest) (*Result, error) {
	profile, err := l.store.ClaimProfileByToken(token, req.AuthUserID)
	if err != nil {
		return nil, &Error{Kind: KindPersistence, Message: MsgRegistrationFailed, Err: err}
	}
	if profile == nil {
		log.Info("Claim token not claimable, falling through to matching", "userID", req.AuthUserID)
		return nil, nil
	}

	l.cleanupPlaceholder(req.AuthUserID, profile.ID)
	l.finish(OutcomeClaimedViaToken, req, profile.ID, nil)
	return &Result{
		Outcome:         OutcomeClaimedViaToken,
		Linked:          true,
		ProfileID:       profile.ID,
		PlayerID:        derefString(profile.PlayerID),
		ClaimedViaToken: true,
		Message:         MsgClaimedViaToken,
	}, nil
}

// bestCandidate consults the matching service and returns the top candidate
// after discarding any that already belong to a user. An already-linked
// profile must never be proposed as a target, regardless of score. Matcher
// failures degrade to no candidates; a registration never fails because the
// matcher is down.
func (l *Linker) bestCandidate(ctx context.Context, req ResolveRequest) *matcher.Candidate {
	candidates, err := l.matcher.FindMatchingProfiles(ctx, &matcher.SearchParams{
		Email:     playerid.NormalizeEmail(req.Email),
		BirthDate: req.BirthDate,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		l.metrics.IncMatcherFailure()
		log.Error("Matching service unavailable, continuing without candidates", "error", err, "userID", req.AuthUserID)
		return nil
	}

	// Candidates arrive ordered by descending score; ordering is the
	// matcher's responsibility and ties go to the first in its order.
	for i := range candidates {
		if candidates[i].UserID != nil {
			log.Debug("Discarding already-linked candidate", "profileID", candidates[i].ProfileID)
			continue
		}
		return &candidates[i]
	}
	return nil
}

// settlePending promotes the placeholder into a pending profile (or builds
// one from scratch when the signup trigger failed) and, for medium
// confidence, queues the candidate for admin review.
func (l *Linker) settlePending(req ResolveRequest, suggestion *matcher.Candidate) (*Result, error) {
	derivedID := playerid.Derive(req.Email, req.BirthDate)
	name := strings.TrimSpace(req.FirstName + " " + req.LastName)

	outcome := OutcomeNoMatch
	if suggestion != nil {
		outcome = OutcomePartialPending
	}

	profile, err := l.store.PromotePlaceholder(req.AuthUserID, roster.Promotion{
		PlayerID: derivedID,
		Name:     name,
		Position: req.Position,
	})
	if err != nil {
		if errors.Is(err, roster.ErrDuplicate) {
			return nil, &Error{Kind: KindDuplicate, Message: MsgDuplicateRegistration, Err: err}
		}
		return nil, &Error{Kind: KindPersistence, Message: MsgRegistrationFailed, Err: err}
	}
	if profile == nil {
		// The signup trigger should have left a placeholder. Registration
		// must still terminate in a usable pending profile.
		log.Warn("No placeholder found for identity, creating pending profile from scratch", "userID", req.AuthUserID)
		outcome = OutcomeFallbackCreated
		profile, err = l.store.InsertPendingProfile(roster.NewProfile{
			UserID:    req.AuthUserID,
			PlayerID:  derivedID,
			Name:      name,
			Email:     req.Email,
			BirthDate: req.BirthDate,
			Position:  req.Position,
		})
		if err != nil {
			if errors.Is(err, roster.ErrDuplicate) {
				return nil, &Error{Kind: KindDuplicate, Message: MsgDuplicateRegistration, Err: err}
			}
			return nil, &Error{Kind: KindPersistence, Message: MsgRegistrationFailed, Err: err}
		}
	}

	result := &Result{
		Outcome:   outcome,
		Created:   true,
		ProfileID: profile.ID,
		PlayerID:  derefString(profile.PlayerID),
		Message:   MsgNoMatch,
	}
	metadata := map[string]any{}

	if suggestion != nil {
		sg := roster.MergeSuggestion{
			ProfileID: suggestion.ProfileID,
			UserID:    req.AuthUserID,
			Score:     suggestion.MatchScore,
			Reason:    suggestion.MatchReason,
		}
		// The pending profile is already committed; losing the suggestion
		// only costs an admin ping, so these failures are logged, not fatal.
		if err := l.store.InsertMergeSuggestion(sg); err != nil {
			log.Error("Failed to queue merge suggestion", "error", err, "profileID", suggestion.ProfileID)
		} else if err := l.notifier.SendMergeSuggestionNotice(sg, suggestion.Name, req.Email, req.DryRun); err != nil {
			log.Error("Failed to notify admins about merge suggestion", "error", err)
		}
		result.MatchScore = suggestion.MatchScore
		result.Partial = &PartialMatch{
			ProfileID: suggestion.ProfileID,
			Name:      suggestion.Name,
			Score:     suggestion.MatchScore,
		}
		result.Message = MsgPartialPending
		metadata["score"] = suggestion.MatchScore
		metadata["candidate_id"] = suggestion.ProfileID
		metadata["reason"] = suggestion.MatchReason
	}

	l.finish(outcome, req, profile.ID, metadata)
	return result, nil
}

// cleanupPlaceholder removes the signup placeholder after a successful link.
// Best-effort: a user must never lose access because cleanup failed.
func (l *Linker) cleanupPlaceholder(userID, linkedProfileID string) {
	if err := l.store.DeletePlaceholder(userID, linkedProfileID); err != nil {
		log.Error("Failed to delete placeholder after link", "error", err, "userID", userID)
	}
}

// finish records the terminal outcome: one audit entry plus metrics. Runs
// strictly after the authoritative profile mutation committed.
func (l *Linker) finish(outcome Outcome, req ResolveRequest, targetProfileID string, metadata map[string]any) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["email"] = req.Email
	if req.BirthDate != "" {
		metadata["birth_date"] = req.BirthDate
	}
	if req.FirstName != "" || req.LastName != "" {
		metadata["name"] = strings.TrimSpace(req.FirstName + " " + req.LastName)
	}

	l.audit.Record(audit.Entry{
		Action:          string(outcome),
		ActorID:         req.AuthUserID,
		TargetProfileID: targetProfileID,
		Metadata:        metadata,
	})
	l.metrics.IncResolution(string(outcome))
	if l.counters != nil {
		l.counters.Increment("resolution_" + strings.ToLower(string(outcome)))
	}
}

func alreadyResolvedResult(profile *roster.Profile) *Result {
	return &Result{
		Linked:    profile.CreatedByAdmin,
		Created:   !profile.CreatedByAdmin,
		ProfileID: profile.ID,
		PlayerID:  derefString(profile.PlayerID),
		Message:   MsgAlreadyResolved,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
