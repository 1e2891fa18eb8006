package repo

import (
	"context"

	"yatube/internal/models"
)

func (s *Store) CreateComment(ctx context.Context, c models.Comment) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (post_id, author_id, text, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, c.PostID, c.AuthorID, c.Text, c.Created).Scan(&id)
	return id, err
}

// ListComments returns a post's comments in insertion order.
func (s *Store) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.post_id, c.author_id, u.username, c.text, c.created
		  FROM comments c
		  JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = $1
		 ORDER BY c.id
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Author, &c.Text, &c.Created); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
