package repo

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"yatube/internal/models"
)

var postCols = []string{
	"id", "text", "pub_date", "author_id", "username",
	"group_id", "title", "slug", "image",
}

func newStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestGetPostScopedToAuthor(t *testing.T) {
	s, mock := newStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.id = $1 AND p.author_id = $2`)).
		WithArgs(int64(5), int64(2)).
		WillReturnRows(sqlmock.NewRows(postCols))

	_, err := s.GetPost(context.Background(), 2, 5)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a wrong-author lookup, got %v", err)
	}
}

func TestGetPostFound(t *testing.T) {
	s, mock := newStore(t)
	gid := int64(3)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.id = $1 AND p.author_id = $2`)).
		WithArgs(int64(5), int64(2)).
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow(5, "hello", time.Now(), 2, "alice", gid, "Cats", "cats", ""))

	p, err := s.GetPost(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if p.Author != "alice" || p.Text != "hello" {
		t.Fatalf("unexpected post: %+v", p)
	}
	if p.GroupID == nil || *p.GroupID != gid || p.GroupSlug != "cats" {
		t.Fatalf("group not scanned: %+v", p)
	}
}

func TestListPostsNullGroup(t *testing.T) {
	s, mock := newStore(t)
	mock.ExpectQuery(`FROM posts p`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow(1, "no group here", time.Now(), 1, "bob", nil, "", "", ""))

	posts, err := s.ListPosts(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}
	if posts[0].GroupID != nil {
		t.Fatalf("expected nil group id, got %v", *posts[0].GroupID)
	}
}

func TestCreatePostNullsEmptyImage(t *testing.T) {
	s, mock := newStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts`)).
		WithArgs("hi", sqlmock.AnyArg(), int64(1), nil, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := s.CreatePost(context.Background(), models.Post{
		Text: "hi", PubDate: time.Now(), AuthorID: 1,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if id != 7 {
		t.Fatalf("id = %d, want 7", id)
	}
}

func TestUpdatePostMissing(t *testing.T) {
	s, mock := newStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE posts`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdatePost(context.Background(), models.Post{ID: 42, Text: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteFollowMissingEdge(t *testing.T) {
	s, mock := newStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM follows`)).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeleteFollow(context.Background(), 1, 2)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unfollow without an edge should fail, got %v", err)
	}
}

func TestCreateFollowIsIdempotent(t *testing.T) {
	s, mock := newStore(t)
	// ON CONFLICT DO NOTHING: zero rows affected is still success
	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (user_id, author_id) DO NOTHING`)).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.CreateFollow(context.Background(), 1, 2); err != nil {
		t.Fatalf("repeat follow should not fail: %v", err)
	}
}

func TestGetUserByUsernameMissing(t *testing.T) {
	s, mock := newStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE username = $1`)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetUserByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListCommentsInsertionOrder(t *testing.T) {
	s, mock := newStore(t)
	rows := sqlmock.NewRows([]string{"id", "post_id", "author_id", "username", "text", "created"}).
		AddRow(1, 5, 2, "bob", "first", time.Now()).
		AddRow(2, 5, 3, "carol", "second", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`FROM comments c`)).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	comments, err := s.ListComments(context.Background(), 5)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 2 || comments[0].Text != "first" || comments[1].Text != "second" {
		t.Fatalf("unexpected comments: %+v", comments)
	}
}
