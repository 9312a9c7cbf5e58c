package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/metajournal/reward-engine/internal/repository"
	log "github.com/sirupsen/logrus"
)

// AdminHandler exposes operational views over all users' progression.
type AdminHandler struct {
	ProgressRepo *repository.ProgressRepository
}

func NewAdminHandler(progressRepo *repository.ProgressRepository) *AdminHandler {
	return &AdminHandler{
		ProgressRepo: progressRepo,
	}
}

// GetAllProgressHandler returns every user's progression document.
func (h *AdminHandler) GetAllProgressHandler(w http.ResponseWriter, r *http.Request) {
	states, err := h.ProgressRepo.GetAll(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to fetch progression states")
		http.Error(w, "Failed to fetch progression states", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(states)
}
