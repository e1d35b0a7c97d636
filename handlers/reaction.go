package handlers

import (
	"net/http"

	"github.com/Danchouvzv/nevsluh/middleware"
	"github.com/Danchouvzv/nevsluh/pkg"
	"github.com/Danchouvzv/nevsluh/services"
)

// ReactionHandler, tepki endpoint'ini yöneten struct.
type ReactionHandler struct {
	reactionService services.ReactionService
}

// NewReactionHandler, constructor.
func NewReactionHandler(reactionService services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// React godoc
// POST /api/messages/{id}/reactions
// Mesaja anonim tepki ekler. X-Anon-Token zorunlu.
//
// Response: { "added": bool, "reaction_count": int }
// added=false → bu token zaten tepki vermiş, sayaç değişmedi (200 döner, hata değil).
func (h *ReactionHandler) React(w http.ResponseWriter, r *http.Request) {
	messageID := r.PathValue("id")

	anonToken, ok := middleware.FromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "anon token not found in context")
		return
	}

	result, err := h.reactionService.React(r.Context(), messageID, anonToken)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}
