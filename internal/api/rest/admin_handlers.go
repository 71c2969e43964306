package rest

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/courtside/hoophub/internal/config"
	"github.com/courtside/hoophub/internal/ingest"
	"github.com/courtside/hoophub/internal/service"
	"github.com/courtside/hoophub/internal/store"
)

// AdminHandler serves the token-gated ingestion triggers and roster edits.
type AdminHandler struct {
	cfg       *config.Config
	scores    *ingest.ScoresPipeline
	stats     *ingest.StatsPipeline
	standings *service.StandingsService
	players   *service.PlayerService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(cfg *config.Config, scores *ingest.ScoresPipeline, stats *ingest.StatsPipeline,
	standings *service.StandingsService, players *service.PlayerService) *AdminHandler {
	return &AdminHandler{
		cfg:       cfg,
		scores:    scores,
		stats:     stats,
		standings: standings,
		players:   players,
	}
}

// ingestRequest is the body for ingestion triggers. Dates are YYYY-MM-DD;
// empty bounds leave that end of the window open.
type ingestRequest struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Policy string `json:"policy"`
}

// TriggerScores runs a scores ingestion over the requested window
func (h *AdminHandler) TriggerScores(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	policyStr := req.Policy
	if policyStr == "" {
		policyStr = h.cfg.VenuePolicy
	}
	policy, err := ingest.ParseVenuePolicy(policyStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid venue policy", err)
		return
	}

	report, err := h.scores.Run(r.Context(), ingest.Window{Start: req.Start, End: req.End}, policy)
	if err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  err.Error(),
			"report": report,
		})
		return
	}

	h.standings.Invalidate(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{"report": report})
}

// TriggerStats runs a player stats ingestion over the requested window
func (h *AdminHandler) TriggerStats(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	report, err := h.stats.Run(r.Context(), ingest.Window{Start: req.Start, End: req.End})
	if err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  err.Error(),
			"report": report,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"report": report})
}

// TriggerEnrichment runs the post-hoc venue/attendance pass
func (h *AdminHandler) TriggerEnrichment(w http.ResponseWriter, r *http.Request) {
	report, err := h.scores.AttachEnrichment(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  err.Error(),
			"report": report,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"report": report})
}

// createPlayerRequest is the body for roster additions.
type createPlayerRequest struct {
	TeamID       int    `json:"team_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Age          *int   `json:"age"`
	Position     string `json:"position"`
	JerseyNumber *int   `json:"jersey_number"`
	HeightInches *int   `json:"height_inches"`
	WeightPounds *int   `json:"weight_pounds"`
}

// CreatePlayer inserts a player so their feed stats can resolve
func (h *AdminHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	player := &store.Player{
		TeamID:    req.TeamID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Age != nil {
		player.Age = sql.NullInt32{Int32: int32(*req.Age), Valid: true}
	}
	if req.Position != "" {
		player.Position = sql.NullString{String: req.Position, Valid: true}
	}
	if req.JerseyNumber != nil {
		player.JerseyNumber = sql.NullInt32{Int32: int32(*req.JerseyNumber), Valid: true}
	}
	if req.HeightInches != nil {
		player.HeightInches = sql.NullInt32{Int32: int32(*req.HeightInches), Valid: true}
	}
	if req.WeightPounds != nil {
		player.WeightPounds = sql.NullInt32{Int32: int32(*req.WeightPounds), Valid: true}
	}

	created, err := h.players.CreatePlayer(r.Context(), player)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create player", err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func decodeBody(r *http.Request, dest interface{}) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}
