package handler

import (
	"strconv"

	"idolagency/internal/service"
	"idolagency/pkg/response"

	"github.com/gin-gonic/gin"
)

// ListSongs returns the player's songs, lazily committing any elapsed
// production windows.
// GET /api/v1/songs
func (h *Handler) ListSongs(c *gin.Context) {
	songs, err := h.songService.List(c.Request.Context(), playerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, songs)
}

// GetSong returns one song.
// GET /api/v1/songs/:id
func (h *Handler) GetSong(c *gin.Context) {
	songID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid song id")
		return
	}

	song, err := h.songService.Get(c.Request.Context(), playerID(c), songID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, song)
}

// ProduceSong charges the studio fee and starts a production timer.
// POST /api/v1/songs
func (h *Handler) ProduceSong(c *gin.Context) {
	var req service.ProduceSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request: "+err.Error())
		return
	}

	song, err := h.songService.ProduceSong(c.Request.Context(), playerID(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, song)
}
