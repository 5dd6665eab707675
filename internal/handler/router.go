package handler

import (
	"idolagency/internal/config"
	"idolagency/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config, dice *model.Dice) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(RecoveryMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(CORSMiddleware())

	h := NewHandler(db, rdb, cfg, dice)

	api := r.Group("/api/v1")
	{
		authRequired := AuthMiddleware(db, rdb)

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/logout", authRequired, h.Logout)
			auth.GET("/me", authRequired, h.Me)
		}

		game := api.Group("")
		game.Use(authRequired)
		{
			agency := game.Group("/agency")
			{
				agency.GET("/profile", h.GetProfile)
				agency.PUT("/name", h.RenameAgency)
				agency.GET("/managers", h.ListManagers)
				agency.POST("/managers/:id/hire", h.HireManager)
				agency.GET("/ledger", h.GetLedgerHistory)
				agency.GET("/upgrades", h.ListUpgrades)
				agency.POST("/upgrades/purchase", h.PurchaseUpgrade)
				agency.POST("/pulse", h.Pulse)
			}

			idols := game.Group("/idols")
			{
				idols.GET("", h.ListIdols)
				idols.POST("/scout", h.Scout)
				idols.POST("/pack", h.CreatePack)
				idols.POST("/pack/:pack_id/choose", h.ChooseFromPack)
				idols.GET("/:id", h.GetIdol)
				idols.POST("/:id/train", h.TrainIdol)
				idols.DELETE("/:id", h.ReleaseIdol)
			}

			groups := game.Group("/groups")
			{
				groups.GET("", h.ListGroups)
				groups.POST("", h.CreateGroup)
				groups.GET("/:id", h.GetGroup)
				groups.PUT("/:id", h.UpdateGroup)
				groups.POST("/:id/members", h.AddGroupMember)
				groups.DELETE("/:id/members/:idol_id", h.RemoveGroupMember)
			}

			songs := game.Group("/songs")
			{
				songs.GET("", h.ListSongs)
				songs.POST("", h.ProduceSong)
				songs.GET("/:id", h.GetSong)
			}

			promotions := game.Group("/promotions")
			{
				promotions.GET("", h.ListPromotions)
				promotions.GET("/catalog", h.PromotionCatalog)
				promotions.POST("", h.StartPromotion)
				promotions.POST("/:id/complete", h.CompletePromotion)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
