package handler

import (
	"net/http"

	"ploshtadka/internal/authz"
	"ploshtadka/internal/venue/models"
	"ploshtadka/pkg/platform/httputil"
)

// handleList searches venues. Without an explicit status, only active venues
// are shown unless the caller holds admin:venues:read.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, authz.RequireRead)
	if !ok {
		return
	}
	f, ok := h.filters(w, r)
	if !ok {
		return
	}
	if f.Status() == nil && !p.Has(authz.ScopeAdminRead) {
		active := models.StatusActive
		f = f.WithStatus(&active)
	}

	items, err := h.venues.ListVenues(r.Context(), f)
	if err != nil {
		h.writeError(w, r, "failed to list venues", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(items))
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, authz.RequireMe)
	if !ok {
		return
	}
	f, ok := h.filters(w, r)
	if !ok {
		return
	}

	items, err := h.venues.ListOwnVenues(r.Context(), p, f)
	if err != nil {
		h.writeError(w, r, "failed to list own venues", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(items))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, authz.RequireWrite)
	if !ok {
		return
	}
	req, ok := decode[models.CreateVenueRequest](h, w, r)
	if !ok {
		return
	}

	v, err := h.venues.CreateVenue(r.Context(), p, req)
	if err != nil {
		h.writeError(w, r, "failed to create venue", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toVenueResponse(v))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authorize(w, r, authz.RequireRead); !ok {
		return
	}
	ids, ok := h.pathIDs(w, r, "venue_id")
	if !ok {
		return
	}

	v, err := h.venues.GetVenue(r.Context(), ids[0])
	if err != nil {
		h.writeError(w, r, "failed to get venue", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toVenueResponse(v))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, authz.RequireWrite)
	if !ok {
		return
	}
	ids, ok := h.pathIDs(w, r, "venue_id")
	if !ok {
		return
	}
	req, ok := decode[models.UpdateVenueRequest](h, w, r)
	if !ok {
		return
	}

	v, err := h.venues.UpdateVenue(r.Context(), p, ids[0], req)
	if err != nil {
		h.writeError(w, r, "failed to update venue", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toVenueResponse(v))
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, authz.RequireStatus)
	if !ok {
		return
	}
	ids, ok := h.pathIDs(w, r, "venue_id")
	if !ok {
		return
	}
	req, ok := decode[models.UpdateStatusRequest](h, w, r)
	if !ok {
		return
	}

	v, err := h.venues.UpdateVenueStatus(r.Context(), p, ids[0], req)
	if err != nil {
		h.writeError(w, r, "failed to update venue status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toVenueResponse(v))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, authz.RequireDelete)
	if !ok {
		return
	}
	ids, ok := h.pathIDs(w, r, "venue_id")
	if !ok {
		return
	}

	if err := h.venues.DeleteVenue(r.Context(), p, ids[0]); err != nil {
		h.writeError(w, r, "failed to delete venue", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
