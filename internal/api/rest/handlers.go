package rest

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/courtside/hoophub/internal/cache"
	"github.com/courtside/hoophub/internal/config"
	"github.com/courtside/hoophub/internal/service"
	"github.com/courtside/hoophub/internal/store"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db               *store.Database
	cache            *cache.RedisCache
	scoreboardTTL    time.Duration
	location         *time.Location
	teamService      *service.TeamService
	playerService    *service.PlayerService
	gameService      *service.GameService
	standingsService *service.StandingsService
}

// NewHandler creates a new handler
func NewHandler(cfg *config.Config, db *store.Database, redisCache *cache.RedisCache) *Handler {
	return &Handler{
		db:            db,
		cache:         redisCache,
		scoreboardTTL: time.Duration(cfg.CacheTTLScoreboard) * time.Second,
		location:      cfg.Location(),
		teamService:   service.NewTeamService(db),
		playerService: service.NewPlayerService(db),
		gameService:   service.NewGameService(db, cfg.Location()),
		standingsService: service.NewStandingsService(db, redisCache,
			time.Duration(cfg.CacheTTLStandings)*time.Second),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	checks := map[string]string{"database": "ok"}

	if err := h.db.HealthCheck(); err != nil {
		status = "unhealthy"
		checks["database"] = err.Error()
	}
	if h.cache != nil {
		checks["cache"] = "ok"
		if err := h.cache.HealthCheck(r.Context()); err != nil {
			// Degraded but still serving; reads fall through to Postgres
			checks["cache"] = err.Error()
		}
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]interface{}{
		"status":  status,
		"service": "hoophub",
		"checks":  checks,
	})
}

// GetTeams returns all teams
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, teams)
}

// GetTeam returns one team's bio with coach, venue, and records
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID")
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(r.Context(), teamID)
	if err != nil {
		respondNotFoundOrError(w, err, "Failed to fetch team")
		return
	}

	respondJSON(w, http.StatusOK, team)
}

// GetTeamRecord returns a team's overall, home, and away win/loss splits
func (h *Handler) GetTeamRecord(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID")
	if !ok {
		return
	}

	record, err := h.teamService.GetTeamRecord(r.Context(), teamID)
	if err != nil {
		respondNotFoundOrError(w, err, "Failed to fetch team record")
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// GetTeamRoster returns a team's players
func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID")
	if !ok {
		return
	}

	roster, err := h.teamService.GetRoster(r.Context(), teamID)
	if err != nil {
		respondNotFoundOrError(w, err, "Failed to fetch roster")
		return
	}

	respondJSON(w, http.StatusOK, roster)
}

// GetHeadToHead returns the matchup history against ?opponent=
func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID")
	if !ok {
		return
	}

	opponentID, err := strconv.Atoi(r.URL.Query().Get("opponent"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "opponent query parameter must be a team ID", err)
		return
	}

	result, err := h.teamService.GetHeadToHead(r.Context(), teamID, opponentID)
	if err != nil {
		respondNotFoundOrError(w, err, "Failed to fetch head to head")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetPlayers returns all players with per-game averages
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.ListPlayers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch players", err)
		return
	}

	respondJSON(w, http.StatusOK, players)
}

// GetPlayer returns one player's bio and averages
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathInt(w, r, "playerID")
	if !ok {
		return
	}

	player, err := h.playerService.GetPlayer(r.Context(), playerID)
	if err != nil {
		respondNotFoundOrError(w, err, "Failed to fetch player")
		return
	}

	respondJSON(w, http.StatusOK, player)
}

// ComparePlayers returns two players' averages via ?a=&b=
func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	aID, errA := strconv.Atoi(r.URL.Query().Get("a"))
	bID, errB := strconv.Atoi(r.URL.Query().Get("b"))
	if errA != nil || errB != nil {
		respondError(w, http.StatusBadRequest, "a and b query parameters must be player IDs", nil)
		return
	}

	comparison, err := h.playerService.ComparePlayers(r.Context(), aID, bID)
	if err != nil {
		respondNotFoundOrError(w, err, "Failed to compare players")
		return
	}

	respondJSON(w, http.StatusOK, comparison)
}

// GetGamesByDate returns games for ?date=YYYY-MM-DD, defaulting to today
func (h *Handler) GetGamesByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.localDate(0)
	}

	games, err := h.gameService.GetGamesByDate(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, games)
}

// GetYesterdaysGames returns the previous day's scoreboard, cached
func (h *Handler) GetYesterdaysGames(w http.ResponseWriter, r *http.Request) {
	key := "scoreboard:" + h.localDate(-1)

	if h.cache != nil {
		var cached []*store.GameSummary
		if hit, err := h.cache.GetJSON(r.Context(), key, &cached); err == nil && hit {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	games, err := h.gameService.GetYesterdaysGames(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetJSON(r.Context(), key, games, h.scoreboardTTL); err != nil {
			log.Printf("[rest] ⚠️ scoreboard cache write failed: %v", err)
		}
	}

	respondJSON(w, http.StatusOK, games)
}

// GetBoxScore returns the full box score for a game
func (h *Handler) GetBoxScore(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathInt(w, r, "gameID")
	if !ok {
		return
	}

	boxScore, err := h.gameService.GetBoxScore(r.Context(), gameID)
	if err != nil {
		respondNotFoundOrError(w, err, "Failed to fetch box score")
		return
	}

	respondJSON(w, http.StatusOK, boxScore)
}

// GetStandings returns standings, filterable by ?conference= or ?division=
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	conference := r.URL.Query().Get("conference")
	division := r.URL.Query().Get("division")

	standings, err := h.standingsService.GetStandings(r.Context(), conference, division)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch standings", err)
		return
	}

	respondJSON(w, http.StatusOK, standings)
}

// pathInt reads an integer path variable, responding 400 on garbage.
// localDate formats today plus offsetDays in the configured timezone, so
// "today" and "yesterday" track the feed's game dates rather than the host
// clock.
func (h *Handler) localDate(offsetDays int) string {
	return time.Now().In(h.location).AddDate(0, 0, offsetDays).Format("2006-01-02")
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		respondError(w, http.StatusBadRequest, name+" must be an integer", err)
		return 0, false
	}
	return value, true
}

// respondNotFoundOrError maps repository "not found" errors to 404.
func respondNotFoundOrError(w http.ResponseWriter, err error, message string) {
	if strings.Contains(err.Error(), "not found") {
		respondError(w, http.StatusNotFound, err.Error(), nil)
		return
	}
	respondError(w, http.StatusInternalServerError, message, err)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
