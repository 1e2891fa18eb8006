package repo

import (
	"context"

	"yatube/internal/models"
)

func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, username, created_at
		  FROM users
		 WHERE username = $1
	`, username).Scan(&u.ID, &u.Email, &u.Username, &u.CreatedAt)
	if err != nil {
		return models.User{}, notFound(err)
	}
	return u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, username, created_at
		  FROM users
		 WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Username, &u.CreatedAt)
	if err != nil {
		return models.User{}, notFound(err)
	}
	return u, nil
}
