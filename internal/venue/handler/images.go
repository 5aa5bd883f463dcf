package handler

import (
	"net/http"

	"ploshtadka/internal/authz"
	"ploshtadka/internal/venue/models"
	"ploshtadka/pkg/platform/httputil"
)

func (h *Handler) handleListImages(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, authz.RequireImages)
	if !ok {
		return
	}
	ids, ok := h.pathIDs(w, r, "venue_id")
	if !ok {
		return
	}

	images, err := h.venues.ListImages(r.Context(), p, ids[0])
	if err != nil {
		h.writeError(w, r, "failed to list images", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toImageResponses(images))
}

func (h *Handler) handleAddImage(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, authz.RequireImages)
	if !ok {
		return
	}
	ids, ok := h.pathIDs(w, r, "venue_id")
	if !ok {
		return
	}
	req, ok := decode[models.CreateImageRequest](h, w, r)
	if !ok {
		return
	}

	img, err := h.venues.AddImage(r.Context(), p, ids[0], req)
	if err != nil {
		h.writeError(w, r, "failed to add image", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toImageResponse(img))
}

func (h *Handler) handleUpdateImage(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, authz.RequireImages)
	if !ok {
		return
	}
	ids, ok := h.pathIDs(w, r, "venue_id", "image_id")
	if !ok {
		return
	}
	req, ok := decode[models.UpdateImageRequest](h, w, r)
	if !ok {
		return
	}

	img, err := h.venues.UpdateImage(r.Context(), p, ids[0], ids[1], req)
	if err != nil {
		h.writeError(w, r, "failed to update image", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toImageResponse(img))
}

func (h *Handler) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, authz.RequireImages)
	if !ok {
		return
	}
	ids, ok := h.pathIDs(w, r, "venue_id", "image_id")
	if !ok {
		return
	}

	if err := h.venues.DeleteImage(r.Context(), p, ids[0], ids[1]); err != nil {
		h.writeError(w, r, "failed to delete image", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleReorderImages(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, authz.RequireImages)
	if !ok {
		return
	}
	ids, ok := h.pathIDs(w, r, "venue_id")
	if !ok {
		return
	}
	req, ok := decode[models.ReorderImagesRequest](h, w, r)
	if !ok {
		return
	}

	images, err := h.venues.ReorderImages(r.Context(), p, ids[0], req)
	if err != nil {
		h.writeError(w, r, "failed to reorder images", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toImageResponses(images))
}
