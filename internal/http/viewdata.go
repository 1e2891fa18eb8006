package httpx

import (
	"context"
	"html/template"
	"net/http"

	"yatube/internal/auth"
	"yatube/internal/forms"
	"yatube/internal/models"
)

type pageData struct {
	Title    string
	UserID   int64
	Username string
	Path     string
	// Feed carries pre-rendered (and possibly cached) post-list markup
	Feed     template.HTML
	Posts    []postVM
	Post     postVM
	Comments []commentVM
	Group    models.Group
	Groups   []models.Group
	Profile  profileVM
	Form     formVM
	Page     Page
}

type postVM struct {
	ID        int64
	Text      string
	PubDate   string
	Author    string
	Group     string
	GroupSlug string
	Image     string
}

type commentVM struct {
	Author  string
	Text    string
	Created string
}

type profileVM struct {
	Username  string
	PostCount int
	Followers int
	Following int
	Followed  bool
}

// formVM backs every form template: post form, comment form and the auth
// pages all read from it.
type formVM struct {
	Title    string
	Button   string
	Text     string
	GroupID  int64
	Email    string
	Username string
	Next     string
	Errors   forms.Errors
}

const timeLayout = "2 Jan 2006 15:04"

func postView(p models.Post) postVM {
	return postVM{
		ID:        p.ID,
		Text:      p.Text,
		PubDate:   p.PubDate.Format(timeLayout),
		Author:    p.Author,
		Group:     p.Group,
		GroupSlug: p.GroupSlug,
		Image:     p.Image,
	}
}

func postViews(posts []models.Post) []postVM {
	out := make([]postVM, 0, len(posts))
	for _, p := range posts {
		out = append(out, postView(p))
	}
	return out
}

func commentViews(comments []models.Comment) []commentVM {
	out := make([]commentVM, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentVM{
			Author:  c.Author,
			Text:    c.Text,
			Created: c.Created.Format(timeLayout),
		})
	}
	return out
}

// fillUserMeta resolves the signed-in user's name for the layout nav.
func (s *Server) fillUserMeta(ctx context.Context, data *pageData) {
	if uid, ok := auth.UserIDFrom(ctx); ok {
		data.UserID = uid
		if u, err := s.Store.GetUserByID(ctx, uid); err == nil {
			data.Username = u.Username
		}
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data *pageData) {
	s.fillUserMeta(r.Context(), data)
	if err := s.Renderer.Render(w, name, data); err != nil {
		s.Log.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	data := &pageData{Title: "Not found", Path: r.URL.Path}
	s.fillUserMeta(r.Context(), data)
	if err := s.Renderer.RenderStatus(w, http.StatusNotFound, "404.html", data); err != nil {
		s.Log.Error().Err(err).Msg("render 404 failed")
	}
}

func (s *Server) renderServerError(w http.ResponseWriter, r *http.Request) {
	data := &pageData{Title: "Server error"}
	if err := s.Renderer.RenderStatus(w, http.StatusInternalServerError, "500.html", data); err != nil {
		s.Log.Error().Err(err).Msg("render 500 failed")
	}
}

// serverError logs the fault and shows the generic 500 page.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.Log.Error().Err(err).Str("path", r.URL.Path).Msg("server error")
	s.renderServerError(w, r)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderNotFound(w, r)
}
