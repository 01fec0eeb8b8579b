package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/socialchef/cookmate/internal/controller"
	apperrors "github.com/socialchef/cookmate/internal/errors"
	"github.com/socialchef/cookmate/internal/middleware"
	"github.com/socialchef/cookmate/internal/sentry"
	"github.com/socialchef/cookmate/internal/session"
	"github.com/socialchef/cookmate/internal/theme"
	"github.com/socialchef/cookmate/internal/validation"
	"github.com/socialchef/cookmate/internal/view"
)

type Server struct {
	sessions *session.Store
	theme    *theme.Setting
	renderer *view.Renderer
}

func NewServer(sessions *session.Store, setting *theme.Setting, renderer *view.Renderer) *Server {
	return &Server{
		sessions: sessions,
		theme:    setting,
		renderer: renderer,
	}
}

type SubmitIngredientsRequest struct {
	Ingredients string `json:"ingredients"`
}

// StateResponse is the session state plus the shared theme.
type StateResponse struct {
	controller.State
	Theme theme.Mode `json:"theme"`
}

type ThemeResponse struct {
	Theme theme.Mode `json:"theme"`
}

func (s *Server) controller(r *http.Request) (*controller.Controller, error) {
	id, ok := middleware.GetSessionID(r.Context())
	if !ok {
		return nil, apperrors.NewInternalError("request has no session", "MISSING_SESSION", nil)
	}
	return s.sessions.Get(id), nil
}

// HandlePage renders the whole UI. ?step=N picks the cooking animation frame.
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	step, _ := strconv.Atoi(r.URL.Query().Get("step"))
	page := view.NewPage(ctrl.Snapshot(), s.theme.Current(), step)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.renderer.Render(w, page); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render page", "error", err)
		sentry.CaptureError(r.Context(), err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleSubmitForm starts a list fetch from the ingredient form.
func (s *Server) HandleSubmitForm(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	ctrl.SubmitIngredientsAsync(r.Context(), r.PostForm.Get("ingredients"))
	redirectHome(w, r)
}

// HandleSelectForm opens the detail modal for the recipe card at {index}.
func (s *Server) HandleSelectForm(w http.ResponseWriter, r *http.Request) {
	if err := s.selectRecipe(r); err != nil {
		slog.DebugContext(r.Context(), "Ignoring recipe selection", "error", err)
	}
	redirectHome(w, r)
}

func (s *Server) HandleCloseForm(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ctrl.CloseDetail()
	redirectHome(w, r)
}

func (s *Server) HandleToggleThemeForm(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := ctrl.ToggleTheme(r.Context()); err != nil {
		sentry.CaptureError(r.Context(), err)
	}
	http.Redirect(w, r, refererPath(r), http.StatusSeeOther)
}

// HandleGetState returns the session state as JSON.
func (s *Server) HandleGetState(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.writeState(w, http.StatusOK, ctrl)
}

// HandleSubmitIngredients starts a list fetch. It answers 202 with the loading state,
// 400 for input without ingredients and 409 while another list fetch runs.
func (s *Server) HandleSubmitIngredients(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req SubmitIngredientsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.NewValidationError("Invalid request body", "INVALID_BODY", `Send {"ingredients": "..."}.`))
		return
	}
	if len(validation.NormalizeIngredients(req.Ingredients)) == 0 {
		writeError(w, r, apperrors.NewValidationError("No ingredients given", "EMPTY_INGREDIENTS", "List at least one ingredient."))
		return
	}

	if !ctrl.SubmitIngredientsAsync(r.Context(), req.Ingredients) {
		writeError(w, r, apperrors.NewConflictError("Recipes are already loading", "LIST_IN_PROGRESS", "Wait for the current request to finish."))
		return
	}
	s.writeState(w, http.StatusAccepted, ctrl)
}

func (s *Server) HandleSelectRecipe(w http.ResponseWriter, r *http.Request) {
	if err := s.selectRecipe(r); err != nil {
		writeError(w, r, err)
		return
	}
	ctrl, _ := s.controller(r)
	s.writeState(w, http.StatusAccepted, ctrl)
}

func (s *Server) HandleCloseDetail(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ctrl.CloseDetail()
	s.writeState(w, http.StatusOK, ctrl)
}

// HandleToggleTheme flips the theme. A failed save still answers with the new mode.
func (s *Server) HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	mode, err := ctrl.ToggleTheme(r.Context())
	if err != nil {
		sentry.CaptureError(r.Context(), err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ThemeResponse{Theme: mode})
}

func (s *Server) selectRecipe(r *http.Request) error {
	ctrl, err := s.controller(r)
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return apperrors.NewValidationError("Recipe index must be a number", "INVALID_INDEX", "")
	}
	rec, err := ctrl.RecipeAt(index)
	if err != nil {
		return err
	}

	ctrl.SelectRecipeAsync(r.Context(), rec)
	return nil
}

func (s *Server) writeState(w http.ResponseWriter, status int, ctrl *controller.Controller) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(StateResponse{
		State: ctrl.Snapshot(),
		Theme: s.theme.Current(),
	})
}

// writeError answers with the AppError in err's chain, or a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.NewInternalError("Internal server error", "INTERNAL_ERROR", err)
	}
	if appErr.StatusCode >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
		sentry.CaptureError(r.Context(), err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	json.NewEncoder(w).Encode(appErr)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// refererPath keeps the carousel position across a theme toggle. Only same-site
// paths are honoured.
func refererPath(r *http.Request) string {
	ref, err := r.URL.Parse(r.Referer())
	if err != nil || r.Referer() == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if ref.Path != "/" {
		return "/"
	}
	if ref.RawQuery == "" {
		return "/"
	}
	return "/?" + ref.RawQuery
}
