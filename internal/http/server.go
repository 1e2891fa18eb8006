package httpx

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"yatube/internal/app"
	"yatube/internal/cache"
	"yatube/internal/render"
	"yatube/internal/repo"
)

type Server struct {
	DB       *sql.DB
	Store    *repo.Store
	Cache    cache.PageCache
	Cfg      app.Config
	Log      zerolog.Logger
	Renderer *render.Renderer
	Router   *mux.Router
}

func NewServer(db *sql.DB, pages cache.PageCache, cfg app.Config, log zerolog.Logger) *Server {
	s := &Server{
		DB:       db,
		Store:    repo.New(db),
		Cache:    pages,
		Cfg:      cfg,
		Log:      log,
		Renderer: render.New(),
	}

	r := mux.NewRouter()
	r.Use(s.recoverPanics, s.accessLog, s.withSession)
	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)

	// fixed paths first so they never match as a username
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/group/{slug}/", s.handleGroup).Methods(http.MethodGet)
	r.Handle("/new/", s.requireAuth(http.HandlerFunc(s.handleNewPost))).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/follow/", s.requireAuth(http.HandlerFunc(s.handleFollowIndex))).Methods(http.MethodGet)

	r.HandleFunc("/auth/signup/", s.handleSignup).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/login/", s.handleLogin).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/logout/", s.handleLogout).Methods(http.MethodGet)

	media := http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaRoot)))
	r.PathPrefix("/media/").Handler(media).Methods(http.MethodGet)

	r.HandleFunc("/{username}/", s.handleProfile).Methods(http.MethodGet)
	r.Handle("/{username}/follow/", s.requireAuth(http.HandlerFunc(s.handleFollow))).Methods(http.MethodGet)
	r.Handle("/{username}/unfollow/", s.requireAuth(http.HandlerFunc(s.handleUnfollow))).Methods(http.MethodGet)
	r.HandleFunc("/{username}/{post_id:[0-9]+}/", s.handlePostView).Methods(http.MethodGet)
	r.Handle("/{username}/{post_id:[0-9]+}/edit/", s.requireAuth(http.HandlerFunc(s.handlePostEdit))).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/{username}/{post_id:[0-9]+}/comment/", s.requireAuth(http.HandlerFunc(s.handleAddComment))).Methods(http.MethodPost)

	s.Router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.Router.ServeHTTP(w, r) }
