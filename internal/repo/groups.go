package repo

import (
	"context"

	"yatube/internal/models"
)

func (s *Store) GetGroupBySlug(ctx context.Context, slug string) (models.Group, error) {
	var g models.Group
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, slug, description
		  FROM groups
		 WHERE slug = $1
	`, slug).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	if err != nil {
		return models.Group{}, notFound(err)
	}
	return g, nil
}

func (s *Store) GroupExists(ctx context.Context, id int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM groups WHERE id = $1`, id).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListGroups feeds the group selector on the post form.
func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, slug, description
		  FROM groups
		 ORDER BY title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
