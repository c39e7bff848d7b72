package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/ligadomingo/roster-link/internal/linker"
)

// registerResponse is the external shape of a resolution. Internal store
// error text never appears here; failures carry one of the fixed messages.
type registerResponse struct {
	OK              bool                 `json:"ok"`
	Linked          bool                 `json:"linked"`
	Created         bool                 `json:"created"`
	ProfileID       string               `json:"profile_id,omitempty"`
	PlayerID        string               `json:"player_id,omitempty"`
	MatchScore      int                  `json:"match_score,omitempty"`
	PartialMatch    *linker.PartialMatch `json:"partial_match,omitempty"`
	ClaimedViaToken bool                 `json:"claimed_via_token,omitempty"`
	Message         string               `json:"message"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// RegisterHandler runs one resolution pass for a registration and composes
// the external response.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req linker.ResolveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Failed to decode registration body", "error", err)
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		req.DryRun = isDryRunFromContext(r)

		result, err := s.Linker.Resolve(r.Context(), req)
		if err != nil {
			var lerr *linker.Error
			if errors.As(err, &lerr) {
				log.Error("Resolution failed", "error", err, "userID", req.AuthUserID)
				respondJSON(w, lerr.HTTPStatus(), errorResponse{Error: lerr.Message})
				return
			}
			log.Error("Resolution failed with unclassified error", "error", err, "userID", req.AuthUserID)
			respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "registration failed, please try again"})
			return
		}

		respondJSON(w, http.StatusOK, registerResponse{
			OK:              true,
			Linked:          result.Linked,
			Created:         result.Created,
			ProfileID:       result.ProfileID,
			PlayerID:        result.PlayerID,
			MatchScore:      result.MatchScore,
			PartialMatch:    result.Partial,
			ClaimedViaToken: result.ClaimedViaToken,
			Message:         result.Message,
		})
	}
}

func (s *Server) ListProfilesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := s.Store.GetAllProfiles()
		if err != nil {
			http.Error(w, "Failed to get profiles", http.StatusInternalServerError)
			log.Error("Failed to get profiles from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(profiles); err != nil {
			log.Error("Failed to encode profiles to JSON", "error", err)
		}
	}
}

func (s *Server) ListSuggestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suggestions, err := s.Store.GetMergeSuggestions()
		if err != nil {
			http.Error(w, "Failed to get merge suggestions", http.StatusInternalServerError)
			log.Error("Failed to get merge suggestions from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(suggestions); err != nil {
			log.Error("Failed to encode merge suggestions to JSON", "error", err)
		}
	}
}

// IssueTokenHandler rotates the claim token on an unlinked admin profile so
// it can be handed to the player out of band.
func (s *Server) IssueTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			ProfileID string `json:"profile_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProfileID == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "profile_id is required"})
			return
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have issued claim token", "profileID", req.ProfileID)
			respondJSON(w, http.StatusOK, map[string]any{"ok": true, "dry_run": true})
			return
		}

		token, err := s.Store.IssueClaimToken(req.ProfileID)
		if err != nil {
			log.Error("Failed to issue claim token", "error", err, "profileID", req.ProfileID)
			respondJSON(w, http.StatusConflict, errorResponse{Error: "profile not found or already linked"})
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"ok": true, "claim_token": token})
	}
}

func (s *Server) ListAuditHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.Audit.List()
		if err != nil {
			http.Error(w, "Failed to get audit entries", http.StatusInternalServerError)
			log.Error("Failed to get audit entries", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			log.Error("Failed to encode audit entries to JSON", "error", err)
		}
	}
}

// StatsHandler serves the durable operational counters.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.MetricsStore.GetAll()
		if err != nil {
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			log.Error("Failed to get stats from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(counters); err != nil {
			log.Error("Failed to encode stats to JSON", "error", err)
		}
	}
}
