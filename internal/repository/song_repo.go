package repository

import (
	"context"
	"errors"
	"time"

	"idolagency/internal/model"

	"gorm.io/gorm"
)

var ErrSongNotFound = errors.New("song not found")

type SongRepository struct {
	db *gorm.DB
}

func NewSongRepository(db *gorm.DB) *SongRepository {
	return &SongRepository{db: db}
}

func (r *SongRepository) Create(ctx context.Context, tx *gorm.DB, song *model.Song) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(song).Error
}

func (r *SongRepository) GetByID(ctx context.Context, id int64) (*model.Song, error) {
	var song model.Song
	err := r.db.WithContext(ctx).
		Preload("Group.Members").
		First(&song, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSongNotFound
		}
		return nil, err
	}
	return &song, nil
}

func (r *SongRepository) ListByPlayer(ctx context.Context, playerID int64) ([]*model.Song, error) {
	var songs []*model.Song
	err := r.db.WithContext(ctx).
		Preload("Group.Members").
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Find(&songs).Error
	return songs, err
}

// CommitCompletion stamps completed_at the first time a song is observed
// past its production window. The predicate makes the write idempotent:
// concurrent first observers race harmlessly because only one UPDATE
// matches, and the loser needs no retry.
func (r *SongRepository) CommitCompletion(ctx context.Context, songID int64, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Song{}).
		Where("id = ? AND completed_at IS NULL AND production_ends_at <= ?", songID, now).
		Update("completed_at", now).Error
}
