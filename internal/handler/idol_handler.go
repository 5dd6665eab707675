package handler

import (
	"strconv"

	"idolagency/internal/service"
	"idolagency/pkg/response"

	"github.com/gin-gonic/gin"
)

// ListIdols returns the player's roster.
// GET /api/v1/idols
func (h *Handler) ListIdols(c *gin.Context) {
	idols, err := h.idolService.List(c.Request.Context(), playerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, idols)
}

// GetIdol returns one idol.
// GET /api/v1/idols/:id
func (h *Handler) GetIdol(c *gin.Context) {
	idolID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid idol id")
		return
	}

	idol, err := h.idolService.Get(c.Request.Context(), playerID(c), idolID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, idol)
}

// Scout rolls and recruits a single idol.
// POST /api/v1/idols/scout
func (h *Handler) Scout(c *gin.Context) {
	idol, err := h.idolService.Scout(c.Request.Context(), playerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, idol)
}

// TrainIdol raises one stat and arms the training timer.
// POST /api/v1/idols/:id/train
func (h *Handler) TrainIdol(c *gin.Context) {
	idolID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid idol id")
		return
	}

	var req service.TrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.idolService.Train(c.Request.Context(), playerID(c), idolID, req.Stat)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, result)
}

// ReleaseIdol removes an ungrouped idol from the roster.
// DELETE /api/v1/idols/:id
func (h *Handler) ReleaseIdol(c *gin.Context) {
	idolID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid idol id")
		return
	}

	if err := h.idolService.Release(c.Request.Context(), playerID(c), idolID); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"released": idolID})
}

// CreatePack drafts five candidate idols behind an ephemeral offer key.
// POST /api/v1/idols/pack
func (h *Handler) CreatePack(c *gin.Context) {
	pack, err := h.packService.CreatePack(c.Request.Context(), playerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, pack)
}

// ChooseFromPack redeems one draft from a pack offer.
// POST /api/v1/idols/pack/:pack_id/choose
func (h *Handler) ChooseFromPack(c *gin.Context) {
	var req service.ChooseIdolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request: "+err.Error())
		return
	}

	idol, err := h.packService.ChooseIdol(c.Request.Context(), playerID(c), c.Param("pack_id"), req.Index)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, idol)
}
