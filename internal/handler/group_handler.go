package handler

import (
	"strconv"

	"idolagency/internal/service"
	"idolagency/pkg/response"

	"github.com/gin-gonic/gin"
)

// ListGroups returns the player's groups with members preloaded.
// GET /api/v1/groups
func (h *Handler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.List(c.Request.Context(), playerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, service.NewGroupViews(groups))
}

// GetGroup returns one group.
// GET /api/v1/groups/:id
func (h *Handler) GetGroup(c *gin.Context) {
	groupID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid group id")
		return
	}

	group, err := h.groupService.Get(c.Request.Context(), playerID(c), groupID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, service.NewGroupView(group))
}

// CreateGroup debuts a new group from 2-7 free idols.
// POST /api/v1/groups
func (h *Handler) CreateGroup(c *gin.Context) {
	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request: "+err.Error())
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), playerID(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, service.NewGroupView(group))
}

// UpdateGroup renames a group or changes its concept.
// PUT /api/v1/groups/:id
func (h *Handler) UpdateGroup(c *gin.Context) {
	groupID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid group id")
		return
	}

	var req service.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request: "+err.Error())
		return
	}

	group, err := h.groupService.UpdateGroup(c.Request.Context(), playerID(c), groupID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, service.NewGroupView(group))
}

type memberRequest struct {
	IdolID int64 `json:"idol_id" binding:"required"`
}

// AddGroupMember attaches a free idol to the group.
// POST /api/v1/groups/:id/members
func (h *Handler) AddGroupMember(c *gin.Context) {
	groupID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid group id")
		return
	}

	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request: "+err.Error())
		return
	}

	group, err := h.groupService.AddMember(c.Request.Context(), playerID(c), groupID, req.IdolID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, service.NewGroupView(group))
}

// RemoveGroupMember detaches an idol without breaking the member floor.
// DELETE /api/v1/groups/:id/members/:idol_id
func (h *Handler) RemoveGroupMember(c *gin.Context) {
	groupID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid group id")
		return
	}
	idolID, err := strconv.ParseInt(c.Param("idol_id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid idol id")
		return
	}

	group, err := h.groupService.RemoveMember(c.Request.Context(), playerID(c), groupID, idolID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, service.NewGroupView(group))
}
