package database

import (
	"fmt"
	"time"

	"idolagency/internal/config"
	"idolagency/internal/model"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitMySQL opens the connection pool, migrates the schema and seeds the
// manager catalog.
func InitMySQL(cfg *config.MySQLConfig) *gorm.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to mysql: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get underlying sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	err = db.AutoMigrate(
		&model.User{},
		&model.PlayerProfile{},
		&model.Manager{},
		&model.Idol{},
		&model.Group{},
		&model.GroupMember{},
		&model.Song{},
		&model.Promotion{},
		&model.AgencyUpgrade{},
		&model.LedgerEntry{},
		&model.OutboxMessage{},
	)
	if err != nil {
		log.Fatalf("auto migration failed: %v", err)
	}

	if err := seedManagers(db); err != nil {
		log.Fatalf("manager seeding failed: %v", err)
	}

	DB = db
	log.Info("mysql connected")
	return db
}

func seedManagers(db *gorm.DB) error {
	managers := model.DefaultManagers()
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&managers).Error
}
