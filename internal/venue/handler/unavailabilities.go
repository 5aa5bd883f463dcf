package handler

import (
	"net/http"

	"ploshtadka/internal/authz"
	"ploshtadka/internal/venue/models"
	"ploshtadka/pkg/platform/httputil"
)

func (h *Handler) handleListUnavailabilities(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authorize(w, r, authz.RequireRead); !ok {
		return
	}
	ids, ok := h.pathIDs(w, r, "venue_id")
	if !ok {
		return
	}

	items, err := h.venues.ListUnavailabilities(r.Context(), ids[0])
	if err != nil {
		h.writeError(w, r, "failed to list unavailabilities", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toUnavailabilityResponses(items))
}

func (h *Handler) handleAddUnavailability(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, authz.RequireSchedule)
	if !ok {
		return
	}
	ids, ok := h.pathIDs(w, r, "venue_id")
	if !ok {
		return
	}
	req, ok := decode[models.CreateUnavailabilityRequest](h, w, r)
	if !ok {
		return
	}

	u, err := h.venues.AddUnavailability(r.Context(), p, ids[0], req)
	if err != nil {
		h.writeError(w, r, "failed to add unavailability", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toUnavailabilityResponse(u))
}

func (h *Handler) handleUpdateUnavailability(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, authz.RequireSchedule)
	if !ok {
		return
	}
	ids, ok := h.pathIDs(w, r, "venue_id", "unavailability_id")
	if !ok {
		return
	}
	req, ok := decode[models.UpdateUnavailabilityRequest](h, w, r)
	if !ok {
		return
	}

	u, err := h.venues.UpdateUnavailability(r.Context(), p, ids[0], ids[1], req)
	if err != nil {
		h.writeError(w, r, "failed to update unavailability", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toUnavailabilityResponse(u))
}

func (h *Handler) handleDeleteUnavailability(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, authz.RequireSchedule)
	if !ok {
		return
	}
	ids, ok := h.pathIDs(w, r, "venue_id", "unavailability_id")
	if !ok {
		return
	}

	if err := h.venues.DeleteUnavailability(r.Context(), p, ids[0], ids[1]); err != nil {
		h.writeError(w, r, "failed to delete unavailability", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
