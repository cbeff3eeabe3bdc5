// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package models

import "time"

// Post is a short social post.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`

	// LikesCount is not persisted; computed at query time.
	LikesCount int64 `gorm:"-" json:"likes_count"`
}

// Comment is a comment on a social post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Like records one user liking one post. The user/post pair is unique, so
// liking twice fails at the database even under concurrent requests.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;uniqueIndex:idx_user_post;not null" json:"user_id"`
	PostID    uint      `gorm:"index;uniqueIndex:idx_user_post;not null" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification verbs.
const (
	VerbLiked     = "liked your post"
	VerbCommented = "commented on your post"
	VerbFollowed  = "started following you"
)

// Notification is created synchronously alongside the action that caused
// it (like, comment, follow). One action, one row.
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RecipientID uint      `gorm:"index;not null" json:"recipient_id"`
	ActorID     uint      `gorm:"index;not null" json:"actor_id"`
	Actor       *User     `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Verb        string    `gorm:"size:50;not null" json:"verb"`
	TargetType  string    `gorm:"size:20" json:"target_type"`
	TargetID    uint      `json:"target_id"`
	IsRead      bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}
