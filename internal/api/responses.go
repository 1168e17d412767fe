package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dyluth/taskd/internal/tasks"
	"github.com/go-chi/chi/v5/middleware"
)

// MessageResponse is the body of 400, 404 and 409 responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents the JSON response from the /healthz endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[ERROR] Failed to encode response: %v", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, MessageResponse{Message: message})
}

// respondOutcome maps an operation outcome to its HTTP status and body.
// Failure kinds answer 500 with an empty body; the cause is only logged.
func respondOutcome(w http.ResponseWriter, r *http.Request, out tasks.Outcome) {
	switch out.Kind {
	case tasks.KindCreated:
		w.WriteHeader(http.StatusCreated)
	case tasks.KindOK:
		if out.Task != nil {
			respondJSON(w, http.StatusOK, out.Task)
			return
		}
		w.WriteHeader(http.StatusOK)
	case tasks.KindBadRequest:
		respondMessage(w, http.StatusBadRequest, out.Message)
	case tasks.KindNotFound:
		respondMessage(w, http.StatusNotFound, out.Message)
	case tasks.KindConflict:
		respondMessage(w, http.StatusConflict, out.Message)
	case tasks.KindIntegrityViolation, tasks.KindProtocolMismatch, tasks.KindTransportFailure:
		log.Printf("[ERROR] %s %s (request %s): %s: %v",
			r.Method, r.URL.Path, middleware.GetReqID(r.Context()), out.Kind, out.Err)
		w.WriteHeader(http.StatusInternalServerError)
	default:
		log.Printf("[ERROR] %s %s: unhandled outcome %s", r.Method, r.URL.Path, out.Kind)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
