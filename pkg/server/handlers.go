package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pressdesk/internal/domain"
	"pressdesk/internal/service"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"wordpress_url": s.auth.WordPressURL(),
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   "validation_failed",
			Message: "username and password are required",
		})
		return
	}

	token := s.ensureToken(w, r)
	if err := s.auth.Login(r.Context(), token, req.Username, req.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "Invalid WordPress credentials",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Authentication service unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Authentication successful",
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := s.sessionToken(r); ok {
		s.auth.Logout(token)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleAuthCheck(w http.ResponseWriter, r *http.Request) {
	var username *string
	authenticated := false

	if token, ok := s.sessionToken(r); ok {
		sess := s.auth.Status(token)
		if sess.Authenticated {
			authenticated = true
			username = &sess.Username
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": authenticated,
		"username":      username,
	})
}

func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	connected, url := s.auth.CheckConnectivity(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"connected":     connected,
		"wordpress_url": url,
	})
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	sortByPriority := r.URL.Query().Get("sort_by_priority") == "true"

	posts, err := s.posts.List(r.Context(), sortByPriority)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

type postRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Status   string `json:"status"`
	Priority *int   `json:"priority"`
}

func (in postRequest) toInput() service.PostInput {
	return service.PostInput{
		Title:    in.Title,
		Content:  in.Content,
		Status:   domain.PostStatus(in.Status),
		Priority: in.Priority,
	}
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   "validation_failed",
			Message: "invalid request body",
		})
		return
	}

	post, err := s.posts.Create(r.Context(), req.toInput())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleNewPostForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"statuses":       domain.Statuses(),
		"default_status": domain.StatusDraft,
	})
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := s.postID(w, r)
	if !ok {
		return
	}

	post, err := s.posts.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := s.postID(w, r)
	if !ok {
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   "validation_failed",
			Message: "invalid request body",
		})
		return
	}

	post, err := s.posts.Update(r.Context(), id, req.toInput())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := s.postID(w, r)
	if !ok {
		return
	}

	if err := s.posts.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Post deleted successfully",
	})
}

type priorityRequest struct {
	Priority *int `json:"priority"`
}

func (s *Server) handleUpdatePriority(w http.ResponseWriter, r *http.Request) {
	id, ok := s.postID(w, r)
	if !ok {
		return
	}

	var req priorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Priority == nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   "validation_failed",
			Message: "priority is required",
		})
		return
	}

	if err := s.posts.UpdatePriority(r.Context(), id, *req.Priority); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Priority updated successfully",
	})
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	stats, err := s.posts.Reconcile(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	title, items, err := s.feed.Fetch(r.Context())
	if err != nil {
		s.logger.Error("feed preview failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "feed_unavailable",
			Message: "Public feed could not be fetched",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"title":    title,
		"feed_url": s.feed.FeedURL(),
		"items":    items,
		"count":    len(items),
	})
}

// postID parses the {id} path segment, writing a validation error on
// failure.
func (s *Server) postID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   "validation_failed",
			Message: "invalid post id",
		})
		return 0, false
	}
	return id, true
}
