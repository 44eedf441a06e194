package models

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge in the follow graph. The composite unique
// index keeps the relation duplicate-free; irreflexivity is checked in
// the service layer.
type Follow struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FollowerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_follower_author" json:"follower_id"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_follower_author;index" json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
	Follower   User      `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}
