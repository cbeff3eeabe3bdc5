// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlogPostLifecycle(t *testing.T) {
	db := newTestDB(t)
	blog := NewBlogStore(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	post, err := blog.CreatePost(ctx, alice.ID, "On rereading", "Some books improve the second time.", []string{"Essays", "reading"})
	require.NoError(t, err)
	require.NotZero(t, post.ID)
	require.False(t, post.PublishedDate.IsZero())

	got, err := blog.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 2)

	updated, err := blog.UpdatePost(ctx, post.ID, "On rereading", "Revised.", []string{"reading"})
	require.NoError(t, err)
	require.Len(t, updated.Tags, 1)
	require.Equal(t, "reading", updated.Tags[0].Name)

	require.NoError(t, blog.DeletePost(ctx, post.ID))
	_, err = blog.GetPost(ctx, post.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBlogTagsNormalizedAndShared(t *testing.T) {
	db := newTestDB(t)
	blog := NewBlogStore(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	// "Fiction" and "  fiction " resolve to the same tag row.
	_, err := blog.CreatePost(ctx, alice.ID, "First", "x", []string{"Fiction"})
	require.NoError(t, err)
	_, err = blog.CreatePost(ctx, alice.ID, "Second", "y", []string{"  fiction ", "history"})
	require.NoError(t, err)

	tags, err := blog.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)

	posts, count, err := blog.ListPosts(ctx, "fiction", 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
	require.Len(t, posts, 2)

	_, count, err = blog.ListPosts(ctx, "history", 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestBlogComments(t *testing.T) {
	db := newTestDB(t)
	blog := NewBlogStore(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post, err := blog.CreatePost(ctx, alice.ID, "Open thread", "Discuss.", nil)
	require.NoError(t, err)

	first, err := blog.CreateComment(ctx, post.ID, bob.ID, "First comment.")
	require.NoError(t, err)
	_, err = blog.CreateComment(ctx, post.ID, alice.ID, "Second comment.")
	require.NoError(t, err)

	got, err := blog.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	require.Equal(t, first.ID, got.Comments[0].ID)

	updated, err := blog.UpdateComment(ctx, first.ID, "Edited comment.")
	require.NoError(t, err)
	require.Equal(t, "Edited comment.", updated.Content)

	require.NoError(t, blog.DeleteComment(ctx, first.ID))
	_, err = blog.GetComment(ctx, first.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// Commenting on a missing post is rejected.
	_, err = blog.CreateComment(ctx, 9999, bob.ID, "into the void")
	require.ErrorIs(t, err, ErrNotFound)
}
