package httpx

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"yatube/internal/auth"
	"yatube/internal/forms"
	"yatube/internal/media"
	"yatube/internal/models"
	"yatube/internal/repo"
)

const (
	feedPageSize   = 10
	followPageSize = 5
)

// ------------------------------------------------------------------
// Feeds
// ------------------------------------------------------------------

// handleIndex serves the global feed. Only the viewer-independent post list
// is cached per page number; the shell around it renders fresh on every
// request so no viewer ever sees another viewer's nav. New posts stay
// invisible until the TTL runs out.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := fmt.Sprintf("page:index:%d", parsePageNumber(r.URL.Query().Get("page")))

	feed, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		s.Log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		ok = false
	}
	if !ok {
		count, err := s.Store.CountPosts(ctx)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		page := paginate(r.URL.Query().Get("page"), count, feedPageSize)
		posts, err := s.Store.ListPosts(ctx, page.PerPage, page.Offset)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		feed, err = s.Renderer.Fragment("post_list", &pageData{Posts: postViews(posts), Page: page})
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		if err := s.Cache.Set(ctx, key, feed, s.Cfg.CacheTTL); err != nil {
			s.Log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}

	s.render(w, r, "index.html", &pageData{Title: "Yatube", Feed: template.HTML(feed)})
}

func (s *Server) handleGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	group, err := s.Store.GetGroupBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		s.renderNotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	count, err := s.Store.CountGroupPosts(ctx, group.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	page := paginate(r.URL.Query().Get("page"), count, feedPageSize)
	posts, err := s.Store.ListGroupPosts(ctx, group.ID, page.PerPage, page.Offset)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, "group.html", &pageData{
		Title: group.Title,
		Group: group,
		Posts: postViews(posts),
		Page:  page,
	})
}

func (s *Server) handleFollowIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid, _ := auth.UserIDFrom(ctx)

	count, err := s.Store.CountFollowPosts(ctx, uid)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	page := paginate(r.URL.Query().Get("page"), count, followPageSize)
	posts, err := s.Store.ListFollowPosts(ctx, uid, page.PerPage, page.Offset)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, "follow.html", &pageData{
		Title: "My feed",
		Posts: postViews(posts),
		Page:  page,
	})
}

// ------------------------------------------------------------------
// Post creation and editing
// ------------------------------------------------------------------

// readPostForm pulls the post fields out of the request and collects field
// errors. Author and pub_date never come from the form. An uploaded image
// only reaches disk once the whole form is valid, so a rejected submission
// leaves no orphan blob behind. Infrastructure faults come back as the error
// return, not as validation messages.
func (s *Server) readPostForm(r *http.Request) (forms.PostForm, forms.Result, error) {
	form := forms.PostForm{Text: r.FormValue("text")}
	res := form.Validate()

	if raw := r.FormValue("group"); raw != "" {
		gid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			res.Fail("group", "Choose an existing group")
		} else {
			ok, err := s.Store.GroupExists(r.Context(), gid)
			if err != nil {
				return form, res, err
			}
			if !ok {
				res.Fail("group", "Choose an existing group")
			} else {
				form.GroupID = &gid
			}
		}
	}

	upload, err := media.ReadPostImage(r, "image")
	if errors.Is(err, media.ErrNotImage) {
		res.Fail("image", "Upload a valid image")
	} else if err != nil {
		return form, res, err
	}

	if res.Valid() && upload != nil {
		path, err := upload.Save(s.Cfg.MediaRoot)
		if err != nil {
			return form, res, err
		}
		form.Image = path
	}
	return form, res, nil
}

func (s *Server) handleNewPost(w http.ResponseWriter, r *http.Request) {
	groups, err := s.Store.ListGroups(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	data := &pageData{
		Title:  "New post",
		Groups: groups,
		Form:   formVM{Title: "New post", Button: "Add"},
	}

	if r.Method == http.MethodGet {
		s.render(w, r, "new.html", data)
		return
	}

	form, res, err := s.readPostForm(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if !res.Valid() {
		data.Form.Text = form.Text
		if form.GroupID != nil {
			data.Form.GroupID = *form.GroupID
		}
		data.Form.Errors = res.Errors
		s.render(w, r, "new.html", data)
		return
	}

	uid, _ := auth.UserIDFrom(r.Context())
	_, err = s.Store.CreatePost(r.Context(), models.Post{
		Text:     form.Text,
		PubDate:  time.Now(),
		AuthorID: uid,
		GroupID:  form.GroupID,
		Image:    form.Image,
	})
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// resolvePost looks up the post behind /{username}/{post_id}/ paths. A
// username/post mismatch is a plain miss.
func (s *Server) resolvePost(r *http.Request) (models.User, models.Post, error) {
	vars := mux.Vars(r)
	user, err := s.Store.GetUserByUsername(r.Context(), vars["username"])
	if err != nil {
		return models.User{}, models.Post{}, err
	}
	postID, err := strconv.ParseInt(vars["post_id"], 10, 64)
	if err != nil {
		return models.User{}, models.Post{}, repo.ErrNotFound
	}
	post, err := s.Store.GetPost(r.Context(), user.ID, postID)
	if err != nil {
		return models.User{}, models.Post{}, err
	}
	return user, post, nil
}

func (s *Server) handlePostView(w http.ResponseWriter, r *http.Request) {
	user, post, err := s.resolvePost(r)
	if errors.Is(err, repo.ErrNotFound) {
		s.renderNotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.renderPostDetail(w, r, user, post, formVM{})
}

func (s *Server) renderPostDetail(w http.ResponseWriter, r *http.Request, user models.User, post models.Post, form formVM) {
	ctx := r.Context()
	comments, err := s.Store.ListComments(ctx, post.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	count, err := s.Store.CountAuthorPosts(ctx, user.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, "post.html", &pageData{
		Title:    "Post by " + user.Username,
		Post:     postView(post),
		Comments: commentViews(comments),
		Profile:  profileVM{Username: user.Username, PostCount: count},
		Form:     form,
	})
}

func (s *Server) handlePostEdit(w http.ResponseWriter, r *http.Request) {
	user, post, err := s.resolvePost(r)
	if errors.Is(err, repo.ErrNotFound) {
		s.renderNotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	detail := fmt.Sprintf("/%s/%d/", user.Username, post.ID)
	uid, _ := auth.UserIDFrom(r.Context())
	if uid != post.AuthorID {
		// wrong owner: back to the detail page, no error
		http.Redirect(w, r, detail, http.StatusFound)
		return
	}

	groups, err := s.Store.ListGroups(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	data := &pageData{
		Title:  "Edit post",
		Groups: groups,
		Form:   formVM{Title: "Edit post", Button: "Save", Text: post.Text},
	}
	if post.GroupID != nil {
		data.Form.GroupID = *post.GroupID
	}

	if r.Method == http.MethodGet {
		s.render(w, r, "new.html", data)
		return
	}

	form, res, err := s.readPostForm(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if !res.Valid() {
		data.Form.Text = form.Text
		if form.GroupID != nil {
			data.Form.GroupID = *form.GroupID
		}
		data.Form.Errors = res.Errors
		s.render(w, r, "new.html", data)
		return
	}

	post.Text = form.Text
	post.GroupID = form.GroupID
	if form.Image != "" {
		post.Image = form.Image
	}
	if err := s.Store.UpdatePost(r.Context(), post); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, detail, http.StatusFound)
}

// ------------------------------------------------------------------
// Comments
// ------------------------------------------------------------------

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	user, post, err := s.resolvePost(r)
	if errors.Is(err, repo.ErrNotFound) {
		s.renderNotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	form := forms.CommentForm{Text: r.FormValue("text")}
	res := form.Validate()
	if !res.Valid() {
		s.renderPostDetail(w, r, user, post, formVM{Text: form.Text, Errors: res.Errors})
		return
	}

	uid, _ := auth.UserIDFrom(r.Context())
	_, err = s.Store.CreateComment(r.Context(), models.Comment{
		PostID:   post.ID,
		AuthorID: uid,
		Text:     form.Text,
		Created:  time.Now(),
	})
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/%s/%d/", user.Username, post.ID), http.StatusFound)
}

// ------------------------------------------------------------------
// Profile and follow edges
// ------------------------------------------------------------------

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := mux.Vars(r)["username"]

	prof, err := s.Store.GetUserByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		s.renderNotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	count, err := s.Store.CountAuthorPosts(ctx, prof.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	page := paginate(r.URL.Query().Get("page"), count, feedPageSize)
	posts, err := s.Store.ListAuthorPosts(ctx, prof.ID, page.PerPage, page.Offset)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	followers, err := s.Store.CountFollowers(ctx, prof.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	following, err := s.Store.CountFollowing(ctx, prof.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	followed := false
	if uid, ok := auth.UserIDFrom(ctx); ok {
		followed, err = s.Store.Following(ctx, uid, prof.ID)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
	}

	s.render(w, r, "profile.html", &pageData{
		Title: prof.Username,
		Posts: postViews(posts),
		Page:  page,
		Profile: profileVM{
			Username:  prof.Username,
			PostCount: count,
			Followers: followers,
			Following: following,
			Followed:  followed,
		},
	})
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := mux.Vars(r)["username"]

	author, err := s.Store.GetUserByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		s.renderNotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	uid, _ := auth.UserIDFrom(ctx)
	if uid != author.ID {
		if err := s.Store.CreateFollow(ctx, uid, author.ID); err != nil {
			s.serverError(w, r, err)
			return
		}
	}
	http.Redirect(w, r, "/"+username+"/", http.StatusFound)
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := mux.Vars(r)["username"]

	author, err := s.Store.GetUserByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		s.renderNotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	uid, _ := auth.UserIDFrom(ctx)
	if uid != author.ID {
		// a missing edge is an error here, not a no-op
		if err := s.Store.DeleteFollow(ctx, uid, author.ID); err != nil {
			s.serverError(w, r, err)
			return
		}
	}
	http.Redirect(w, r, "/"+username+"/", http.StatusFound)
}
