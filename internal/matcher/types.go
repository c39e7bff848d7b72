package matcher

// SearchParams are the identity attributes sent to the matching service.
type SearchParams struct {
	Email     string `json:"email"`
	BirthDate string `json:"birth_date,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Candidate is one ranked identity candidate returned by the matching
// service. The service orders candidates by descending score; callers rely
// on that order and never re-sort.
type Candidate struct {
	ProfileID   string  `json:"profile_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	BirthDate   string  `json:"birth_date"`
	PlayerID    string  `json:"player_id"`
	UserID      *string `json:"user_id"`
	MatchScore  int     `json:"match_score"`
	MatchReason string  `json:"match_reason"`
}

type matchResponse struct {
	Candidates []Candidate `json:"candidates"`
}
