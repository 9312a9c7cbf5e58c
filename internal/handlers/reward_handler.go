package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/metajournal/reward-engine/internal/models"
	"github.com/metajournal/reward-engine/internal/services"
	"github.com/metajournal/reward-engine/pkg/middleware"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RewardHandler struct {
	Service *services.RewardService
}

func NewRewardHandler(service *services.RewardService) *RewardHandler {
	return &RewardHandler{
		Service: service,
	}
}

// RecordActionHandler records a user action and returns the updated totals
// plus any newly granted reward.
func (h *RewardHandler) RecordActionHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	action, err := models.ParseAction(payload.Action)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	result, err := h.Service.RecordAction(r.Context(), userID, claims.Email, action)
	if err != nil {
		log.WithError(err).Error("Failed to record action")
		http.Error(w, "Failed to record action", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetProgressHandler returns the user's points, level and streak.
func (h *RewardHandler) GetProgressHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	snapshot, err := h.Service.GetProgress(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to fetch progress")
		http.Error(w, "Failed to fetch progress", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

// GetRewardsHandler returns the user's earned rewards. Pass ?active=true to
// hide expired ones.
func (h *RewardHandler) GetRewardsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	rewards, err := h.Service.GetRewards(r.Context(), userID, activeOnly)
	if err != nil {
		log.WithError(err).Error("Failed to fetch rewards")
		http.Error(w, "Failed to fetch rewards", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rewards)
}

// AcknowledgeRewardHandler clears the pending reward pointer.
func (h *RewardHandler) AcknowledgeRewardHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	if err := h.Service.AcknowledgeReward(r.Context(), userID); err != nil {
		log.WithError(err).Error("Failed to acknowledge reward")
		http.Error(w, "Failed to acknowledge reward", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Reward acknowledged"))
}

// RedeemRewardHandler removes a reward from the earned collection.
func (h *RewardHandler) RedeemRewardHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	rewardID := mux.Vars(r)["id"]
	if err := h.Service.RedeemReward(r.Context(), userID, rewardID); err != nil {
		log.WithError(err).Error("Failed to redeem reward")
		http.Error(w, "Failed to redeem reward", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Reward redeemed"))
}
