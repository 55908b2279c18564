package http

import (
	"encoding/json"
	"net/http"

	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/internal/utils"
	"github.com/avoronov/go-chore-sync/models"
)

func (h *Handler) getData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	doc, err := h.services.DocumentService.Get(r.Context())
	if err != nil {
		log.Error().Err(err).Str("func", "*Handler.getData").Msg("error reading document")
		http.Error(w, "error reading document", statusFromError(err))
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) putData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var candidate models.Document
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		log.Err(err).Str("func", "*Handler.putData").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if candidate == nil {
		log.Error().Str("func", "*Handler.putData").Msg("document must be a JSON object")
		http.Error(w, "document must be a JSON object", http.StatusBadRequest)
		return
	}

	// REST writers hold no channel connection, so everyone gets notified.
	stamped, err := h.services.DocumentService.Replace(r.Context(), candidate, nil)
	if err != nil {
		log.Error().Err(err).Str("func", "*Handler.putData").Msg("error replacing document")
		http.Error(w, "error replacing document", statusFromError(err))
		return
	}

	utils.WriteJSON(w, stamped, http.StatusOK)
}
