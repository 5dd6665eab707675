package handler

import (
	"strconv"

	"idolagency/internal/service"
	"idolagency/pkg/response"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the agency ledger and progression state.
// GET /api/v1/agency/profile
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.playerService.GetProfile(c.Request.Context(), playerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, profile)
}

// RenameAgency updates the agency display name.
// PUT /api/v1/agency/name
func (h *Handler) RenameAgency(c *gin.Context) {
	var req service.RenameAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request: "+err.Error())
		return
	}

	if err := h.playerService.RenameAgency(c.Request.Context(), playerID(c), req.AgencyName); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"agency_name": req.AgencyName})
}

// ListManagers returns the shared manager catalog.
// GET /api/v1/agency/managers
func (h *Handler) ListManagers(c *gin.Context) {
	managers, err := h.playerService.ListManagers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, managers)
}

// HireManager selects a manager for the agency.
// POST /api/v1/agency/managers/:id/hire
func (h *Handler) HireManager(c *gin.Context) {
	managerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid manager id")
		return
	}

	manager, err := h.playerService.HireManager(c.Request.Context(), playerID(c), managerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, manager)
}

// GetLedgerHistory pages through the resource journal.
// GET /api/v1/agency/ledger?page=1&page_size=20
func (h *Handler) GetLedgerHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	history, err := h.playerService.GetLedgerHistory(c.Request.Context(), playerID(c), page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, history)
}

// ListUpgrades returns the upgrade catalog merged with current levels.
// GET /api/v1/agency/upgrades
func (h *Handler) ListUpgrades(c *gin.Context) {
	views, err := h.upgradeService.List(c.Request.Context(), playerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, views)
}

// PurchaseUpgrade buys the next level of an upgrade track.
// POST /api/v1/agency/upgrades/purchase
func (h *Handler) PurchaseUpgrade(c *gin.Context) {
	var req service.PurchaseUpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request: "+err.Error())
		return
	}

	upgrade, err := h.upgradeService.Purchase(c.Request.Context(), playerID(c), req.Type)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, upgrade)
}

// Pulse rolls passive idol activity for the client's poll loop.
// POST /api/v1/agency/pulse
func (h *Handler) Pulse(c *gin.Context) {
	result, err := h.eventService.Pulse(c.Request.Context(), playerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, result)
}
