package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/petmatch/internal/core/domain"
)

// maxBodyBytes caps match request bodies.
const maxBodyBytes = 64 << 10

// MatchRequest is the body of POST /v1/matches. Preferences maps question
// keys to answers; omitted or null keys are unanswered. Answers may be
// strings, booleans or numbers.
type MatchRequest struct {
	Preferences map[string]any `json:"preferences"`
	K           int            `json:"k" validate:"omitempty,min=1,max=100"`
}

// answers flattens scalar preference values into the strings
// domain.ParseAnswers expects.
func (r *MatchRequest) answers() (map[string]string, error) {
	out := make(map[string]string, len(r.Preferences))
	for key, v := range r.Preferences {
		switch v := v.(type) {
		case nil:
		case string:
			out[key] = v
		case bool:
			out[key] = strconv.FormatBool(v)
		case float64:
			out[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return nil, fmt.Errorf("preference %q must be a string, boolean or number", key)
		}
	}
	return out, nil
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "request body must be a JSON object: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", validationMessage(err))
		return
	}

	answers, err := req.answers()
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	prefs, err := domain.ParseAnswers(answers)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	k := req.K
	if k == 0 {
		k = s.cfg.DefaultK
	}

	result, err := s.match.FindMatches(r.Context(), prefs, k)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "animal id must be an integer")
		return
	}

	animal, err := s.match.LookupAnimal(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, animal)
}

func (s *Server) handleQuestions(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"questions": domain.Questions()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	status := s.match.Status()
	if !status.Ready {
		respondJSON(w, http.StatusServiceUnavailable, status)
		return
	}
	respondJSON(w, http.StatusOK, status)
}
