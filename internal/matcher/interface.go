package matcher

import "context"

// MatcherClient defines the interface for the external profile-matching service.
// Only the contract is ours; how scores are computed is the service's business.
type MatcherClient interface {
	FindMatchingProfiles(ctx context.Context, params *SearchParams) ([]Candidate, error)
}
