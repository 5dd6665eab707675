package handler

import (
	"errors"

	"idolagency/internal/config"
	"idolagency/internal/infrastructure/cache"
	"idolagency/internal/model"
	"idolagency/internal/repository"
	"idolagency/internal/service"
	"idolagency/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Handler bundles all service dependencies behind the HTTP surface.
type Handler struct {
	authService      *service.AuthService
	playerService    *service.PlayerService
	idolService      *service.IdolService
	packService      *service.PackService
	groupService     *service.GroupService
	songService      *service.SongService
	promotionService *service.PromotionService
	upgradeService   *service.UpgradeService
	eventService     *service.EventService
	tokenDenylist    *cache.TokenDenylist
}

func NewHandler(db *gorm.DB, rdb *redis.Client, cfg *config.Config, dice *model.Dice) *Handler {
	return &Handler{
		tokenDenylist:    cache.NewTokenDenylist(rdb),
		authService:      service.NewAuthService(db),
		playerService:    service.NewPlayerService(db),
		idolService:      service.NewIdolService(db, dice),
		packService:      service.NewPackService(db, rdb, cfg, dice),
		groupService:     service.NewGroupService(db),
		songService:      service.NewSongService(db, dice),
		promotionService: service.NewPromotionService(db, cfg, dice),
		upgradeService:   service.NewUpgradeService(db),
		eventService:     service.NewEventService(db, dice),
	}
}

// respondError maps expected business outcomes to their response codes;
// anything unmapped is an internal failure.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInsufficientFunds):
		response.BusinessError(c, response.CodeInsufficientFunds, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.BusinessError(c, response.CodeNotOwner, err.Error())
	case errors.Is(err, service.ErrAlreadyTraining):
		response.BusinessError(c, response.CodeAlreadyTraining, err.Error())
	case errors.Is(err, service.ErrAlreadyCompleted):
		response.BusinessError(c, response.CodeAlreadyCompleted, err.Error())
	case errors.Is(err, service.ErrNotReady):
		response.BusinessError(c, response.CodeNotReady, err.Error())
	case errors.Is(err, service.ErrPackExpired):
		response.BusinessError(c, response.CodePackExpired, err.Error())
	case errors.Is(err, service.ErrInvalidSelection):
		response.BusinessError(c, response.CodeInvalidSelection, err.Error())
	case errors.Is(err, service.ErrMaxLevel):
		response.BusinessError(c, response.CodeMaxLevel, err.Error())
	case errors.Is(err, service.ErrGroupSizeInvalid):
		response.BusinessError(c, response.CodeGroupSizeInvalid, err.Error())
	case errors.Is(err, service.ErrIdolUnavailable):
		response.BusinessError(c, response.CodeIdolUnavailable, err.Error())
	case errors.Is(err, service.ErrSongNotReady), errors.Is(err, service.ErrSongGroupMismatch):
		response.BusinessError(c, response.CodeSongNotReady, err.Error())
	case errors.Is(err, service.ErrRequirementsNotMet):
		response.BusinessError(c, response.CodeRequirementsNotMet, err.Error())
	case errors.Is(err, service.ErrCredentialsInvalid):
		response.BusinessError(c, response.CodeCredentialsInvalid, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		response.BusinessError(c, response.CodeEmailTaken, err.Error())
	case errors.Is(err, service.ErrBusy):
		response.BusinessError(c, response.CodeDuplicateRequest, err.Error())
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrPlayerNotFound),
		errors.Is(err, repository.ErrIdolNotFound),
		errors.Is(err, repository.ErrGroupNotFound),
		errors.Is(err, repository.ErrSongNotFound),
		errors.Is(err, repository.ErrPromotionNotFound),
		errors.Is(err, repository.ErrManagerNotFound):
		response.NotFound(c, err.Error())
	default:
		response.ServerError(c, err.Error())
	}
}
