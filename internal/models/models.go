package models

import "time"

type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Group struct {
	ID          int64
	Title       string
	Slug        string
	Description string
}

type Post struct {
	ID        int64
	Text      string
	PubDate   time.Time
	AuthorID  int64
	Author    string
	GroupID   *int64
	Group     string
	GroupSlug string
	Image     string
}

type Comment struct {
	ID       int64
	PostID   int64
	AuthorID int64
	Author   string
	Text     string
	Created  time.Time
}

// Follow is a directed edge: user follows author.
type Follow struct {
	ID       int64
	UserID   int64
	AuthorID int64
}
