package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/dyluth/taskd/pkg/taskstore"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

// newValidator reports field errors by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// createTaskRequest requires every field to be present. Only the id must be
// non-empty.
type createTaskRequest struct {
	ID          *string `json:"id" validate:"required,min=1"`
	Title       *string `json:"title" validate:"required"`
	Author      *string `json:"author" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

// updateTaskRequest fields are all optional; absent and empty fields are
// left untouched. The id is accepted for symmetry with create and ignored.
type updateTaskRequest struct {
	ID          *string `json:"id"`
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Description *string `json:"description"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	task := &taskstore.Task{
		ID:          *req.ID,
		Title:       *req.Title,
		Author:      *req.Author,
		Description: *req.Description,
	}
	respondOutcome(w, r, s.service.Create(r.Context(), task))
}

func (s *Server) handleReadTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	respondOutcome(w, r, s.service.Read(r.Context(), id))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	task := &taskstore.Task{
		ID:          id,
		Title:       deref(req.Title),
		Author:      deref(req.Author),
		Description: deref(req.Description),
	}
	respondOutcome(w, r, s.service.Update(r.Context(), id, task))
}

// taskID returns the decoded {id} path segment. chi matches against
// r.URL.RawPath when it is set, leaving the segment escaped.
func taskID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id, nil
	}
	decoded, err := url.PathUnescape(id)
	if err != nil {
		return "", fmt.Errorf("invalid task id %q: %w", id, err)
	}
	return decoded, nil
}

// handleHealthz returns 200 when the store answers PING and 503 otherwise.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.pinger.Ping(ctx); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Error: err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("field '%s' is required", fe.Field()))
		case "min":
			problems = append(problems, fmt.Sprintf("field '%s' must not be empty", fe.Field()))
		default:
			problems = append(problems, fmt.Sprintf("field '%s' is invalid", fe.Field()))
		}
	}
	return "invalid request: " + strings.Join(problems, ", ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
