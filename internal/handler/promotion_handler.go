package handler

import (
	"strconv"

	"idolagency/internal/service"
	"idolagency/pkg/response"

	"github.com/gin-gonic/gin"
)

// PromotionCatalog returns the static promotion tuning table.
// GET /api/v1/promotions/catalog
func (h *Handler) PromotionCatalog(c *gin.Context) {
	response.Success(c, h.promotionService.Catalog())
}

// ListPromotions returns recent promotions, newest first.
// GET /api/v1/promotions
func (h *Handler) ListPromotions(c *gin.Context) {
	promotions, err := h.promotionService.List(c.Request.Context(), playerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, promotions)
}

// StartPromotion charges the fee and locks in the promotion outcome.
// POST /api/v1/promotions
func (h *Handler) StartPromotion(c *gin.Context) {
	var req service.StartPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request: "+err.Error())
		return
	}

	promotion, err := h.promotionService.StartPromotion(c.Request.Context(), playerID(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, promotion)
}

// CompletePromotion claims the stored rewards, exactly once.
// POST /api/v1/promotions/:id/complete
func (h *Handler) CompletePromotion(c *gin.Context) {
	promotionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid promotion id")
		return
	}

	promotion, err := h.promotionService.CompletePromotion(c.Request.Context(), playerID(c), promotionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, promotion)
}
