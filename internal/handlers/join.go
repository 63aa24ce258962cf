package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/blockpoker/server/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// JoinHandler turns the wallet-connect tuple (walletAddress, gameId,
// username) into a signed token the websocket endpoint accepts.
type JoinHandler struct {
	jwtManager *auth.JWTManager
}

func NewJoinHandler(jwtManager *auth.JWTManager) *JoinHandler {
	return &JoinHandler{jwtManager: jwtManager}
}

func (h *JoinHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Join)
	return r
}

type joinRequest struct {
	WalletAddress string `json:"wallet_address"`
	GameID        string `json:"game_id"`
	Username      string `json:"username"`
}

type joinResponse struct {
	Token    string `json:"token"`
	PlayerID string `json:"player_id"`
	GameID   string `json:"game_id"`
}

func (h *JoinHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.WalletAddress == "" || req.Username == "" {
		http.Error(w, "wallet_address and username are required", http.StatusBadRequest)
		return
	}

	playerID := uuid.New()
	token, err := h.jwtManager.GenerateToken(playerID, req.Username, req.WalletAddress)
	if err != nil {
		slog.Error("Generate join token", "error", err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	slog.Info("Player joined", "player_id", playerID, "username", req.Username, "game_id", req.GameID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(joinResponse{
		Token:    token,
		PlayerID: playerID.String(),
		GameID:   req.GameID,
	})
}
