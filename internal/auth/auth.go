package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken    = errors.New("email already taken")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalidLogin  = errors.New("invalid email or password")
	ErrNoSession     = errors.New("session not found")
)

// ----------------------------
// Context helpers (for middleware and handlers)
// ----------------------------

type ctxKeyUserID struct{}

func WithUserID(ctx context.Context, uid int64) context.Context {
	return context.WithValue(ctx, ctxKeyUserID{}, uid)
}

func UserIDFrom(ctx context.Context) (int64, bool) {
	v := ctx.Value(ctxKeyUserID{})
	if v == nil {
		return 0, false
	}
	id, _ := v.(int64)
	return id, id != 0
}

// ----------------------------
// Register
// ----------------------------

func Register(db *sql.DB, email, username, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if email == "" || username == "" || password == "" {
		return errors.New("email, username and password are required")
	}
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		`INSERT INTO users (email, username, password_hash) VALUES ($1, $2, $3)`,
		email, username, string(hash),
	)
	if isUniqueErr(err, "users_email_key") {
		return ErrEmailTaken
	}
	if isUniqueErr(err, "users_username_key") {
		return ErrUsernameTaken
	}
	return err
}

// ----------------------------
// Login (creates a UUID session with an expiry)
// ----------------------------

func Login(db *sql.DB, email, password string, lifetime time.Duration) (string, int64, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var uid int64
	var passwdHash string

	err := db.QueryRow(`SELECT id, password_hash FROM users WHERE email = $1`, email).Scan(&uid, &passwdHash)
	if err == sql.ErrNoRows {
		return "", 0, ErrInvalidLogin
	}
	if err != nil {
		return "", 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwdHash), []byte(password)); err != nil {
		return "", 0, ErrInvalidLogin
	}

	tx, err := db.Begin()
	if err != nil {
		return "", 0, err
	}
	defer tx.Rollback()

	// one live session per user
	if _, err := tx.Exec(`DELETE FROM sessions WHERE user_id = $1`, uid); err != nil {
		return "", 0, err
	}

	sid := uuid.New().String()
	exp := time.Now().Add(lifetime)

	if _, err := tx.Exec(
		`INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)`,
		sid, uid, exp,
	); err != nil {
		return "", 0, err
	}

	if err := tx.Commit(); err != nil {
		return "", 0, err
	}
	return sid, uid, nil
}

// ----------------------------
// Logout (drops the session by id)
// ----------------------------

func Logout(db *sql.DB, sid string) error {
	_, err := db.Exec(`DELETE FROM sessions WHERE id = $1`, sid)
	return err
}

// ----------------------------
// UserFromSession: validates a cookie value, returns (uid, expires)
// ----------------------------

func UserFromSession(db *sql.DB, sid string) (int64, time.Time, error) {
	var uid int64
	var exp time.Time

	err := db.QueryRow(
		`SELECT user_id, expires_at FROM sessions WHERE id = $1`,
		sid,
	).Scan(&uid, &exp)

	if err == sql.ErrNoRows {
		return 0, time.Time{}, ErrNoSession
	}
	if err != nil {
		return 0, time.Time{}, err
	}
	return uid, exp, nil
}

// ----------------------------
// Helpers
// ----------------------------

func isUniqueErr(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
	}
	return false
}
