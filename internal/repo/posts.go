package repo

import (
	"context"
	"database/sql"
	"strconv"

	"yatube/internal/models"
)

const postColumns = `
	p.id, p.text, p.pub_date, p.author_id, u.username, p.group_id,
	COALESCE(g.title, ''), COALESCE(g.slug, ''), COALESCE(p.image, '')`

const postFrom = `
	  FROM posts p
	  JOIN users u ON u.id = p.author_id
	  LEFT JOIN groups g ON g.id = p.group_id`

func scanPost(row interface{ Scan(...any) error }) (models.Post, error) {
	var p models.Post
	var groupID sql.NullInt64
	err := row.Scan(&p.ID, &p.Text, &p.PubDate, &p.AuthorID, &p.Author, &groupID, &p.Group, &p.GroupSlug, &p.Image)
	if err != nil {
		return models.Post{}, err
	}
	if groupID.Valid {
		p.GroupID = &groupID.Int64
	}
	return p, nil
}

func (s *Store) listPosts(ctx context.Context, where string, limit, offset int, args ...any) ([]models.Post, error) {
	q := `SELECT` + postColumns + postFrom
	if where != "" {
		q += "\n\t WHERE " + where
	}
	q += "\n\t ORDER BY p.pub_date DESC, p.id DESC LIMIT $" +
		strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns the global feed page, newest first.
func (s *Store) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.listPosts(ctx, "", limit, offset)
}

func (s *Store) CountPosts(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM posts`).Scan(&n)
	return n, err
}

func (s *Store) ListGroupPosts(ctx context.Context, groupID int64, limit, offset int) ([]models.Post, error) {
	return s.listPosts(ctx, "p.group_id = $1", limit, offset, groupID)
}

func (s *Store) CountGroupPosts(ctx context.Context, groupID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM posts WHERE group_id = $1`, groupID).Scan(&n)
	return n, err
}

func (s *Store) ListAuthorPosts(ctx context.Context, authorID int64, limit, offset int) ([]models.Post, error) {
	return s.listPosts(ctx, "p.author_id = $1", limit, offset, authorID)
}

func (s *Store) CountAuthorPosts(ctx context.Context, authorID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM posts WHERE author_id = $1`, authorID).Scan(&n)
	return n, err
}

// ListFollowPosts returns posts by every author the user follows.
func (s *Store) ListFollowPosts(ctx context.Context, userID int64, limit, offset int) ([]models.Post, error) {
	return s.listPosts(ctx,
		"p.author_id IN (SELECT author_id FROM follows WHERE user_id = $1)",
		limit, offset, userID)
}

func (s *Store) CountFollowPosts(ctx context.Context, userID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM posts
		 WHERE author_id IN (SELECT author_id FROM follows WHERE user_id = $1)
	`, userID).Scan(&n)
	return n, err
}

// GetPost resolves a post by id scoped to its author; a wrong author is a miss.
func (s *Store) GetPost(ctx context.Context, authorID, postID int64) (models.Post, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT`+postColumns+postFrom+`
	 WHERE p.id = $1 AND p.author_id = $2`, postID, authorID)
	p, err := scanPost(row)
	if err != nil {
		return models.Post{}, notFound(err)
	}
	return p, nil
}

func (s *Store) CreatePost(ctx context.Context, p models.Post) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (text, pub_date, author_id, group_id, image)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id
	`, p.Text, p.PubDate, p.AuthorID, p.GroupID, p.Image).Scan(&id)
	return id, err
}

// UpdatePost rewrites the mutable fields only. Author and pub_date stay as
// created; the caller resolves the post through GetPost first.
func (s *Store) UpdatePost(ctx context.Context, p models.Post) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE posts
		   SET text = $2, group_id = $3, image = NULLIF($4, '')
		 WHERE id = $1
	`, p.ID, p.Text, p.GroupID, p.Image)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
