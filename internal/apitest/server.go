package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/reviewdeck/reviewdeck/internal/api"
)

// Server is a fake ReviewDeck API for command and TUI tests. It serves
// fixture payloads and records mutations in memory.
type Server struct {
	*httptest.Server

	mu sync.Mutex

	// RequireToken rejects requests without this bearer token when set
	RequireToken string
	// ForceUnauthorized makes every endpoint answer 401
	ForceUnauthorized bool

	Builder          *Builder
	Teams            []api.Team
	DiscussionPoints []api.DiscussionPoint
	Onboarding       api.OnboardingStatus
	Billing          api.BillingInfo
	BillingCalls     int
}

// NewServer starts a fake API with seeded fixtures. Close it when done.
func NewServer() *Server {
	s := &Server{
		Builder: NewBuilder(3),
		Billing: *NewBuilder(3).Billing("free", 10, 50, 2),
	}
	s.Teams = s.Builder.Teams(2)

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", s.handleLogin)
	mux.HandleFunc("/auth/register", s.handleRegister)
	mux.HandleFunc("/users/me", s.auth(s.handleMe))
	mux.HandleFunc("/dashboard/metrics", s.auth(s.handleOverview))
	mux.HandleFunc("/dashboard/standup", s.auth(s.handleStandup))
	mux.HandleFunc("/dashboard/analytics", s.auth(s.handleAnalytics))
	mux.HandleFunc("/dashboard/collaboration", s.auth(s.handleCollaboration))
	mux.HandleFunc("/dashboard/standup/discussion-points", s.auth(s.handleDiscussionPoints))
	mux.HandleFunc("/dashboard/standup/discussion-points/", s.auth(s.handleDiscussionPointDelete))
	mux.HandleFunc("/dashboard/teams", s.auth(s.handleTeams))
	mux.HandleFunc("/dashboard/teams/", s.auth(s.handleTeamByID))
	mux.HandleFunc("/github/repositories", s.auth(s.handleRepositories))
	mux.HandleFunc("/github/installation-url", s.auth(s.redirect("https://github.com/apps/reviewdeck/installations/new")))
	mux.HandleFunc("/slack/auth-url", s.auth(s.redirect("https://slack.com/oauth/v2/authorize")))
	mux.HandleFunc("/onboarding/status", s.auth(s.handleOnboardingStatus))
	mux.HandleFunc("/onboarding/user-mappings", s.auth(s.handleUserMappings))
	mux.HandleFunc("/onboarding/complete", s.auth(s.handleOnboardingComplete))
	mux.HandleFunc("/billing/info", s.auth(s.handleBillingInfo))
	mux.HandleFunc("/billing/checkout", s.auth(s.redirect("https://billing.reviewdeck.io/checkout/sess-1")))

	s.Server = httptest.NewServer(mux)
	return s
}

func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		unauthorized := s.ForceUnauthorized
		required := s.RequireToken
		s.mu.Unlock()

		if unauthorized {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if required != "" && r.Header.Get("Authorization") != "Bearer "+required {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) redirect(url string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"url": url})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	json.NewDecoder(r.Body).Decode(&req)
	if req.Password == "wrong" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeJSON(w, api.LoginResponse{
		AccessToken: "test-token",
		User: api.User{
			ID:             "u-1",
			OrganizationID: "org-1",
			Email:          req.Email,
			Name:           "Test User",
		},
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	json.NewDecoder(r.Body).Decode(&req)
	if req.Email == "taken@example.com" {
		w.WriteHeader(http.StatusConflict)
		writeJSON(w, map[string]string{"error": "email already registered"})
		return
	}
	writeJSON(w, api.User{
		ID:             "u-1",
		OrganizationID: "org-1",
		Email:          req.Email,
		Name:           req.Name,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, api.User{ID: "u-1", OrganizationID: "org-1", Email: "dev@example.com", Name: "Test User"})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Builder.Overview())
}

func periodFrom(r *http.Request) api.Period {
	p := api.Period(r.URL.Query().Get("period"))
	if p == "" {
		p = api.PeriodDaily
	}
	return p
}

func (s *Server) handleStandup(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	report := s.Builder.Standup(periodFrom(r), 3)
	report.DiscussionPoints = append([]api.DiscussionPoint(nil), s.DiscussionPoints...)
	s.mu.Unlock()
	writeJSON(w, report)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Builder.Analytics(periodFrom(r), 7))
}

func (s *Server) handleCollaboration(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Builder.Collaboration(periodFrom(r)))
}

func (s *Server) handleDiscussionPoints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req api.CreateDiscussionPointRequest
	json.NewDecoder(r.Body).Decode(&req)
	point := api.DiscussionPoint{
		ID:   uuid.New().String(),
		Text: req.Text,
		Type: req.Type,
	}
	s.mu.Lock()
	s.DiscussionPoints = append(s.DiscussionPoints, point)
	s.mu.Unlock()
	writeJSON(w, point)
}

func (s *Server) handleDiscussionPointDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/dashboard/standup/discussion-points/")
	s.mu.Lock()
	kept := s.DiscussionPoints[:0]
	for _, p := range s.DiscussionPoints {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.DiscussionPoints = kept
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		teams := append([]api.Team(nil), s.Teams...)
		s.mu.Unlock()
		writeJSON(w, teams)
	case http.MethodPost:
		var req api.TeamRequest
		json.NewDecoder(r.Body).Decode(&req)
		team := api.Team{ID: uuid.New().String(), Name: req.Name, Members: req.Members}
		s.mu.Lock()
		s.Teams = append(s.Teams, team)
		s.mu.Unlock()
		writeJSON(w, team)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleTeamByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/dashboard/teams/")
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		var req api.TeamRequest
		json.NewDecoder(r.Body).Decode(&req)
		for i := range s.Teams {
			if s.Teams[i].ID == id {
				s.Teams[i].Name = req.Name
				if req.Members != nil {
					s.Teams[i].Members = req.Members
				}
				writeJSON(w, s.Teams[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	case http.MethodDelete:
		kept := s.Teams[:0]
		for _, team := range s.Teams {
			if team.ID != id {
				kept = append(kept, team)
			}
		}
		s.Teams = kept
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleRepositories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Builder.Repositories(2))
}

func (s *Server) handleOnboardingStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := s.Onboarding
	s.mu.Unlock()
	writeJSON(w, status)
}

func (s *Server) handleUserMappings(w http.ResponseWriter, r *http.Request) {
	var mappings []api.UserMapping
	json.NewDecoder(r.Body).Decode(&mappings)
	s.mu.Lock()
	s.Onboarding.UserMappings = mappings
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOnboardingComplete(w http.ResponseWriter, r *http.Request) {
	var cfg api.SyncConfig
	json.NewDecoder(r.Body).Decode(&cfg)
	s.mu.Lock()
	s.Onboarding.Config = &cfg
	s.Onboarding.Completed = true
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBillingInfo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.BillingCalls++
	info := s.Billing
	s.mu.Unlock()
	writeJSON(w, info)
}
