package repo

import "context"

// Following reports whether user already follows author.
func (s *Store) Following(ctx context.Context, userID, authorID int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM follows WHERE user_id = $1 AND author_id = $2
	`, userID, authorID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateFollow adds the edge if it is not there yet. The (user_id, author_id)
// unique constraint makes a repeated follow a no-op.
func (s *Store) CreateFollow(ctx context.Context, userID, authorID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO follows (user_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, author_id) DO NOTHING
	`, userID, authorID)
	return err
}

// DeleteFollow removes the edge and fails with ErrNotFound when it does not
// exist. Unfollowing someone you never followed is an error, not a no-op.
func (s *Store) DeleteFollow(ctx context.Context, userID, authorID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM follows WHERE user_id = $1 AND author_id = $2
	`, userID, authorID)
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

func (s *Store) CountFollowers(ctx context.Context, authorID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM follows WHERE author_id = $1`, authorID).Scan(&n)
	return n, err
}

func (s *Store) CountFollowing(ctx context.Context, userID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM follows WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}
