package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShortLink rows are kept after expiry; a link only resolves while
// ExpireAt is in the future. The unique index on ShortCode is what
// guarantees at most one surviving row per code under concurrent
// creates.
type ShortLink struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	OriginalURL string    `gorm:"size:2048;not null" json:"originalUrl"`
	ShortCode   string    `gorm:"uniqueIndex;size:32;not null" json:"shortUrl"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	AuthorID    string    `gorm:"size:36;index;not null" json:"authorId"`
	ExpireAt    time.Time `json:"expireAt"`
	Visits      int64     `gorm:"default:0" json:"visits"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (l *ShortLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Expired reports whether the link is past its expiration instant.
func (l *ShortLink) Expired(now time.Time) bool {
	return !l.ExpireAt.After(now)
}
