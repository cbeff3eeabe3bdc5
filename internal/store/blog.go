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

	"github.com/folio-labs/folio/internal/models"
)

// BlogStore manages blog posts, comments, and tags.
type BlogStore struct {
	db *gorm.DB
}

// NewBlogStore creates a blog store.
func NewBlogStore(db *gorm.DB) *BlogStore {
	return &BlogStore{db: db}
}

// ListPosts returns a page of posts, newest first. A non-empty tag narrows
// the listing to posts carrying that tag.
func (s *BlogStore) ListPosts(ctx context.Context, tag string, page, pageSize int) ([]models.BlogPost, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.BlogPost{})
	if tag != "" {
		q = q.Joins("JOIN blog_post_tags ON blog_post_tags.blog_post_id = blog_posts.id").
			Joins("JOIN tags ON tags.id = blog_post_tags.tag_id").
			Where("tags.name = ?", normalizeTag(tag))
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count blog posts: %w", err)
	}

	var posts []models.BlogPost
	err := q.Preload("Author").Preload("Tags").
		Order("blog_posts.published_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return posts, count, nil
}

// CreatePost publishes a post, creating any tags that do not exist yet.
func (s *BlogStore) CreatePost(ctx context.Context, authorID uint, title, content string, tags []string) (*models.BlogPost, error) {
	post := &models.BlogPost{Title: title, Content: content, AuthorID: authorID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resolved, err := resolveTags(tx, tags)
		if err != nil {
			return err
		}
		post.Tags = resolved
		return tx.Create(post).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}
	return s.GetPost(ctx, post.ID)
}

// GetPost returns one post with author, tags, and comments.
func (s *BlogStore) GetPost(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("blog_comments.created_at, blog_comments.id")
		}).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load blog post %d: %w", id, err)
	}
	return &post, nil
}

// UpdatePost rewrites a post's title, content, and tag set. Ownership is
// checked by the handler before this runs.
func (s *BlogStore) UpdatePost(ctx context.Context, id uint, title, content string, tags []string) (*models.BlogPost, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.BlogPost
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&post).Updates(map[string]interface{}{
			"title":   title,
			"content": content,
		}).Error; err != nil {
			return err
		}
		resolved, err := resolveTags(tx, tags)
		if err != nil {
			return err
		}
		return tx.Model(&post).Association("Tags").Replace(resolved)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update blog post %d: %w", id, err)
	}
	return s.GetPost(ctx, id)
}

// DeletePost removes a post and its comments.
func (s *BlogStore) DeletePost(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.BlogPost
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("failed to clear post tags: %w", err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.BlogComment{}).Error; err != nil {
			return fmt.Errorf("failed to delete post comments: %w", err)
		}
		return tx.Delete(&post).Error
	})
}

// CreateComment adds a comment to a post.
func (s *BlogStore) CreateComment(ctx context.Context, postID, authorID uint, content string) (*models.BlogComment, error) {
	var post models.BlogPost
	if err := s.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load blog post %d: %w", postID, err)
	}

	comment := &models.BlogComment{PostID: postID, AuthorID: authorID, Content: content}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create blog comment: %w", err)
	}
	return s.GetComment(ctx, comment.ID)
}

// GetComment returns one comment with its author.
func (s *BlogStore) GetComment(ctx context.Context, id uint) (*models.BlogComment, error) {
	var comment models.BlogComment
	err := s.db.WithContext(ctx).Preload("Author").First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load blog comment %d: %w", id, err)
	}
	return &comment, nil
}

// UpdateComment rewrites a comment's content.
func (s *BlogStore) UpdateComment(ctx context.Context, id uint, content string) (*models.BlogComment, error) {
	res := s.db.WithContext(ctx).Model(&models.BlogComment{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update blog comment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetComment(ctx, id)
}

// DeleteComment removes a comment.
func (s *BlogStore) DeleteComment(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.BlogComment{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete blog comment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListTags returns all tags ordered by name.
func (s *BlogStore) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// resolveTags returns Tag rows for the given names, creating missing ones.
func resolveTags(tx *gorm.DB, names []string) ([]*models.Tag, error) {
	var resolved []*models.Tag
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = normalizeTag(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag := &models.Tag{}
		err := tx.Where("name = ?", name).First(tag).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			tag = &models.Tag{Name: name}
			if err := tx.Create(tag).Error; err != nil {
				return nil, fmt.Errorf("failed to create tag %q: %w", name, err)
			}
		case err != nil:
			return nil, fmt.Errorf("failed to look up tag %q: %w", name, err)
		}
		resolved = append(resolved, tag)
	}
	return resolved, nil
}

func normalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
