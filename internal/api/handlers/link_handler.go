package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/korwin-dev/citelinks-be/internal/auth"
	"github.com/korwin-dev/citelinks-be/internal/models"
	"github.com/korwin-dev/citelinks-be/internal/services"
)

// LinkHandler handles citation-edge queries and imports.
type LinkHandler struct {
	links services.LinkServiceProvider
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(links services.LinkServiceProvider) *LinkHandler {
	return &LinkHandler{links: links}
}

// SearchPayload defines the structure for search requests. Pointers
// distinguish an absent key from a present value; -1 means unconstrained.
type SearchPayload struct {
	DocIDFrom *int64 `json:"doc_id_from"`
	DocIDTo   *int64 `json:"doc_id_to"`
}

// Search handles POST /search. Both keys must be present in the body; an
// empty result set is an error, not an empty success.
func (h *LinkHandler) Search(w http.ResponseWriter, r *http.Request) {
	var payload SearchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorKind(w, http.StatusBadRequest, errNotValid)
		return
	}
	if payload.DocIDFrom == nil || payload.DocIDTo == nil {
		writeErrorKind(w, http.StatusBadRequest, errNotValid)
		return
	}

	links, err := h.links.Search(*payload.DocIDFrom, *payload.DocIDTo)
	if err != nil {
		if !errors.Is(err, services.ErrNoResults) {
			log.Error().Err(err).Msg("Failed to search links")
		}
		writeErrorKind(w, http.StatusBadRequest, errNotValid)
		return
	}

	writeJSON(w, http.StatusOK, links)
}

// Import handles POST /links/import, bulk-loading citation edges from the
// request body.
func (h *LinkHandler) Import(w http.ResponseWriter, r *http.Request) {
	var links []models.Link
	if err := json.NewDecoder(r.Body).Decode(&links); err != nil {
		writeErrorKind(w, http.StatusBadRequest, errNotValid)
		return
	}
	if len(links) == 0 {
		writeErrorKind(w, http.StatusBadRequest, errNotValid)
		return
	}

	count, err := h.links.Import(links)
	if err != nil {
		log.Error().Err(err).Msg("Failed to import links")
		http.Error(w, "Failed to import links", http.StatusInternalServerError)
		return
	}

	entry := log.Info().Int("count", count)
	if user, ok := auth.CurrentUser(r.Context()); ok {
		entry = entry.Str("by", user.Email)
	}
	entry.Msg("Imported citation links")
	writeJSON(w, http.StatusOK, map[string]int{"imported": count})
}
