// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/folio-labs/folio/internal/models"
)

func TestSocialPostCRUDAndSearch(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	post, err := social.CreatePost(ctx, alice.ID, "Reading Dune", "Slow start, stellar middle.")
	require.NoError(t, err)
	_, err = social.CreatePost(ctx, alice.ID, "Library haul", "Five new paperbacks.")
	require.NoError(t, err)

	posts, count, err := social.ListPosts(ctx, "dune", 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.Equal(t, "Reading Dune", posts[0].Title)

	// Search also covers the content column.
	_, count, err = social.ListPosts(ctx, "paperbacks", 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	updated, err := social.UpdatePost(ctx, post.ID, "Reading Dune", "Finished. Masterpiece.")
	require.NoError(t, err)
	require.Equal(t, "Finished. Masterpiece.", updated.Content)

	require.NoError(t, social.DeletePost(ctx, post.ID))
	_, err = social.GetPost(ctx, post.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSocialLikes(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post, err := social.CreatePost(ctx, alice.ID, "Hello", "First post.")
	require.NoError(t, err)

	require.NoError(t, social.LikePost(ctx, bob.ID, post.ID))
	require.ErrorIs(t, social.LikePost(ctx, bob.ID, post.ID), ErrAlreadyLiked)

	got, err := social.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.LikesCount)

	// The author was notified exactly once.
	notifications, _, err := social.Notifications(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, models.VerbLiked, notifications[0].Verb)
	require.Equal(t, bob.ID, notifications[0].ActorID)

	require.NoError(t, social.UnlikePost(ctx, bob.ID, post.ID))
	require.ErrorIs(t, social.UnlikePost(ctx, bob.ID, post.ID), ErrNotLiked)

	got, err = social.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, got.LikesCount)
}

func TestSocialLikeOwnPostNoNotification(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	post, err := social.CreatePost(ctx, alice.ID, "Self-like", "Liking my own post.")
	require.NoError(t, err)

	require.NoError(t, social.LikePost(ctx, alice.ID, post.ID))

	notifications, _, err := social.Notifications(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	require.Empty(t, notifications)
}

func TestSocialComments(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post, err := social.CreatePost(ctx, alice.ID, "Book club", "Thoughts on chapter 3?")
	require.NoError(t, err)

	comment, err := social.CreateComment(ctx, post.ID, bob.ID, "The pacing picks up here.")
	require.NoError(t, err)
	require.NotZero(t, comment.ID)

	// Commenting notifies the post author.
	notifications, _, err := social.Notifications(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, models.VerbCommented, notifications[0].Verb)

	updated, err := social.UpdateComment(ctx, comment.ID, "The pacing really picks up here.")
	require.NoError(t, err)
	require.Equal(t, "The pacing really picks up here.", updated.Content)

	require.NoError(t, social.DeleteComment(ctx, comment.ID))
	_, err = social.GetComment(ctx, comment.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSocialFollow(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.ErrorIs(t, social.Follow(ctx, alice.ID, alice.ID), ErrSelfFollow)
	require.ErrorIs(t, social.Follow(ctx, alice.ID, 9999), ErrNotFound)

	require.NoError(t, social.Follow(ctx, alice.ID, bob.ID))
	require.ErrorIs(t, social.Follow(ctx, alice.ID, bob.ID), ErrAlreadyFollowing)

	// Following notifies the followed user.
	notifications, _, err := social.Notifications(ctx, bob.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, models.VerbFollowed, notifications[0].Verb)

	followers, err := social.Followers(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	require.Equal(t, "alice", followers[0].Username)

	following, err := social.Following(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	require.Equal(t, "bob", following[0].Username)

	require.NoError(t, social.Unfollow(ctx, alice.ID, bob.ID))
	require.ErrorIs(t, social.Unfollow(ctx, alice.ID, bob.ID), ErrNotFollowing)

	followers, err = social.Followers(ctx, bob.ID)
	require.NoError(t, err)
	require.Empty(t, followers)
}

func TestSocialFeed(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	_, err := social.CreatePost(ctx, bob.ID, "From bob", "b")
	require.NoError(t, err)
	latest, err := social.CreatePost(ctx, bob.ID, "Also from bob", "b2")
	require.NoError(t, err)
	_, err = social.CreatePost(ctx, carol.ID, "From carol", "c")
	require.NoError(t, err)
	_, err = social.CreatePost(ctx, alice.ID, "From alice herself", "a")
	require.NoError(t, err)

	require.NoError(t, social.Follow(ctx, alice.ID, bob.ID))

	feed, count, err := social.Feed(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	// Only followed authors appear, newest first.
	require.Equal(t, latest.ID, feed[0].ID)
	for _, p := range feed {
		require.Equal(t, bob.ID, p.AuthorID)
	}
}

func TestSocialNotificationsReadState(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	post, err := social.CreatePost(ctx, alice.ID, "Popular", "p")
	require.NoError(t, err)
	require.NoError(t, social.LikePost(ctx, bob.ID, post.ID))
	require.NoError(t, social.LikePost(ctx, carol.ID, post.ID))

	notifications, count, err := social.Notifications(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	require.NoError(t, social.MarkNotificationRead(ctx, alice.ID, notifications[0].ID))

	// Unread notifications sort before read ones.
	after, _, err := social.Notifications(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	require.False(t, after[0].IsRead)
	require.True(t, after[1].IsRead)

	// Recipients can only mark their own notifications.
	require.ErrorIs(t, social.MarkNotificationRead(ctx, bob.ID, notifications[1].ID), ErrNotFound)

	updated, err := social.MarkAllNotificationsRead(ctx, alice.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, updated)
}
