// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/folio-labs/folio/internal/metrics"
	"github.com/folio-labs/folio/internal/models"
)

// SocialStore manages social posts, comments, likes, follows, and the
// notifications those actions produce. Every notification is written in
// the same transaction as the action that caused it: one action, one row.
type SocialStore struct {
	db *gorm.DB
}

// NewSocialStore creates a social store.
func NewSocialStore(db *gorm.DB) *SocialStore {
	return &SocialStore{db: db}
}

// ListPosts returns a page of posts, newest first. A non-empty search
// matches a substring of the title or content.
func (s *SocialStore) ListPosts(ctx context.Context, search string, page, pageSize int) ([]models.Post, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Post{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	var posts []models.Post
	err := q.Preload("Author").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	if err := s.fillLikeCounts(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

// CreatePost publishes a post.
func (s *SocialStore) CreatePost(ctx context.Context, authorID uint, title, content string) (*models.Post, error) {
	post := &models.Post{AuthorID: authorID, Title: title, Content: content}
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return s.GetPost(ctx, post.ID)
}

// GetPost returns one post with author, comments, and like count.
func (s *SocialStore) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at, comments.id")
		}).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load post %d: %w", id, err)
	}
	if err := s.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", id).Count(&post.LikesCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count likes for post %d: %w", id, err)
	}
	return &post, nil
}

// UpdatePost rewrites a post's title and content.
func (s *SocialStore) UpdatePost(ctx context.Context, id uint, title, content string) (*models.Post, error) {
	res := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":   title,
		"content": content,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update post %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetPost(ctx, id)
}

// DeletePost removes a post along with its comments and likes.
func (s *SocialStore) DeletePost(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete post %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete post comments: %w", err)
		}
		return tx.Where("post_id = ?", id).Delete(&models.Like{}).Error
	})
}

// Feed returns posts authored by users the caller follows, newest first.
// The caller's own posts are not included.
func (s *SocialStore) Feed(ctx context.Context, userID uint, page, pageSize int) ([]models.Post, int64, error) {
	following := s.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", userID)

	q := s.db.WithContext(ctx).Model(&models.Post{}).Where("author_id IN (?)", following)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count feed posts: %w", err)
	}

	var posts []models.Post
	err := q.Preload("Author").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load feed: %w", err)
	}
	if err := s.fillLikeCounts(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

// fillLikeCounts computes LikesCount for the given posts in one query.
func (s *SocialStore) fillLikeCounts(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	type likeCount struct {
		PostID uint
		Count  int64
	}
	var counts []likeCount
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", ids).
		Group("post_id").
		Find(&counts).Error
	if err != nil {
		return fmt.Errorf("failed to count likes: %w", err)
	}

	byID := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byID[c.PostID] = c.Count
	}
	for i := range posts {
		posts[i].LikesCount = byID[posts[i].ID]
	}
	return nil
}

// CreateComment adds a comment and notifies the post's author, unless the
// commenter is the author.
func (s *SocialStore) CreateComment(ctx context.Context, postID, authorID uint, content string) (*models.Comment, error) {
	comment := &models.Comment{PostID: postID, AuthorID: authorID, Content: content}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if post.AuthorID != authorID {
			return createNotification(tx, post.AuthorID, authorID, models.VerbCommented, "post", postID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return s.GetComment(ctx, comment.ID)
}

// GetComment returns one comment with its author.
func (s *SocialStore) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.WithContext(ctx).Preload("Author").First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load comment %d: %w", id, err)
	}
	return &comment, nil
}

// UpdateComment rewrites a comment's content.
func (s *SocialStore) UpdateComment(ctx context.Context, id uint, content string) (*models.Comment, error) {
	res := s.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update comment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetComment(ctx, id)
}

// DeleteComment removes a comment.
func (s *SocialStore) DeleteComment(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LikePost records a like and synchronously creates one notification row
// for the post's author. Liking your own post produces no notification;
// liking twice fails with ErrAlreadyLiked.
func (s *SocialStore) LikePost(ctx context.Context, userID, postID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Like{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyLiked
		}

		if err := tx.Create(&models.Like{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		if post.AuthorID != userID {
			return createNotification(tx, post.AuthorID, userID, models.VerbLiked, "post", postID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyLiked) {
			return err
		}
		return fmt.Errorf("failed to like post %d: %w", postID, err)
	}

	metrics.LikesTotal.Inc()
	return nil
}

// UnlikePost removes a like. The notification it produced stays.
func (s *SocialStore) UnlikePost(ctx context.Context, userID, postID uint) error {
	res := s.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
	if res.Error != nil {
		return fmt.Errorf("failed to unlike post %d: %w", postID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotLiked
	}
	return nil
}

// Follow creates a follower edge and notifies the followed user.
func (s *SocialStore) Follow(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return ErrSelfFollow
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.User
		if err := tx.First(&target, followingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyFollowing
		}

		if err := tx.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID}).Error; err != nil {
			return err
		}
		return createNotification(tx, followingID, followerID, models.VerbFollowed, "user", followerID)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyFollowing) {
			return err
		}
		return fmt.Errorf("failed to follow user %d: %w", followingID, err)
	}
	return nil
}

// Unfollow removes a follower edge.
func (s *SocialStore) Unfollow(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return ErrSelfFollow
	}
	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return fmt.Errorf("failed to unfollow user %d: %w", followingID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// Followers lists the users following userID.
func (s *SocialStore) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followEdge(ctx, userID, "follower_id", "following_id")
}

// Following lists the users userID follows.
func (s *SocialStore) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followEdge(ctx, userID, "following_id", "follower_id")
}

func (s *SocialStore) followEdge(ctx context.Context, userID uint, selectCol, whereCol string) ([]models.User, error) {
	var target models.User
	if err := s.db.WithContext(ctx).First(&target, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	ids := s.db.Model(&models.Follow{}).Select(selectCol).Where(whereCol+" = ?", userID)

	var users []models.User
	err := s.db.WithContext(ctx).Preload("Profile").
		Where("id IN (?)", ids).
		Order("username").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list follow edge for user %d: %w", userID, err)
	}
	return users, nil
}

// Notifications returns a page of the recipient's notifications, unread
// first, then newest first.
func (s *SocialStore) Notifications(ctx context.Context, recipientID uint, page, pageSize int) ([]models.Notification, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Notification{}).Where("recipient_id = ?", recipientID)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var notifications []models.Notification
	err := q.Preload("Actor").
		Order("is_read ASC, created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, count, nil
}

// MarkNotificationRead marks one of the recipient's notifications as read.
// A notification belonging to someone else reads as not found.
func (s *SocialStore) MarkNotificationRead(ctx context.Context, recipientID, notificationID uint) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification %d read: %w", notificationID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllNotificationsRead marks every unread notification for the recipient.
func (s *SocialStore) MarkAllNotificationsRead(ctx context.Context, recipientID uint) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// createNotification writes one notification row inside the caller's
// transaction.
func createNotification(tx *gorm.DB, recipientID, actorID uint, verb, targetType string, targetID uint) error {
	n := &models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Verb:        verb,
		TargetType:  targetType,
		TargetID:    targetID,
	}
	if err := tx.Create(n).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	metrics.NotificationsCreated.WithLabelValues(verb).Inc()
	return nil
}
