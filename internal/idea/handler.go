package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"creatorvault/internal/idea/model"
	"creatorvault/internal/idea/repository"
	"creatorvault/internal/idea/service"
	"creatorvault/middleware"
	"creatorvault/pkg/httperr"
	"creatorvault/pkg/logger"
)

type IdeaHandler struct {
	Service *service.IdeaService
}

func NewIdeaHandler(service *service.IdeaService) *IdeaHandler {
	return &IdeaHandler{Service: service}
}

// authorize enforces the path/token identity match. On mismatch it writes
// the 403 and returns false before any store call can happen.
func (h *IdeaHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := middleware.UserID(r.Context())
	pathUserID := r.PathValue("user_id")
	if pathUserID != userID {
		logger.Sugar.Warnw("authorization failed: user_id mismatch",
			"path_user_id", pathUserID,
			"token_user_id", userID,
		)
		h.writeError(w, r, httperr.Forbidden("cannot access another user's ideas"))
		return "", false
	}
	return userID, true
}

func (h *IdeaHandler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req model.CreateIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, httperr.Validation("invalid request body"))
		return
	}

	idea, err := h.Service.Create(userID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, idea)
}

func (h *IdeaHandler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := h.Service.List(userID, q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *IdeaHandler) GetIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	idea, err := h.Service.Get(r.PathValue("id"), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, idea)
}

func (h *IdeaHandler) UpdateIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var patch model.UpdateIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeError(w, r, httperr.Validation("invalid request body"))
		return
	}

	idea, err := h.Service.Update(r.PathValue("id"), userID, &patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, idea)
}

func (h *IdeaHandler) ReplaceIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req model.CreateIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, httperr.Validation("invalid request body"))
		return
	}

	idea, err := h.Service.Replace(r.PathValue("id"), userID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, idea)
}

func (h *IdeaHandler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.PathValue("id"), userID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseListQuery validates the query string before anything touches the
// store. Out-of-range limits are clamped later by the service; malformed
// values are rejected here.
func parseListQuery(r *http.Request) (repository.ListQuery, error) {
	q := repository.ListQuery{Limit: 20, Sort: "created_at", Order: "desc"}
	params := r.URL.Query()

	if v := params.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, httperr.Validation("limit must be an integer")
		}
		q.Limit = n
	}
	if v := params.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return q, httperr.Validation("offset must be a non-negative integer")
		}
		q.Offset = n
	}

	q.Search = params.Get("search")

	if v := params.Get("stage"); v != "" {
		stage := model.Stage(v)
		if !stage.Valid() {
			return q, httperr.Validation("stage must be one of idea, outline, draft, published")
		}
		q.Stage = stage
	}
	if v := params.Get("priority"); v != "" {
		priority := model.Priority(v)
		if !priority.Valid() {
			return q, httperr.Validation("priority must be one of high, medium, low")
		}
		q.Priority = priority
	}
	if v := params.Get("tags"); v != "" {
		q.Tags = model.NormalizeTags(strings.Split(v, ","))
	}

	if v := params.Get("sort"); v != "" {
		switch v {
		case "created_at", "updated_at", "title", "priority", "stage":
			q.Sort = v
		default:
			return q, httperr.Validation("sort must be one of created_at, updated_at, title, priority, stage")
		}
	}
	if v := params.Get("order"); v != "" {
		switch v {
		case "asc", "desc":
			q.Order = v
		default:
			return q, httperr.Validation("order must be asc or desc")
		}
	}

	return q, nil
}

func (h *IdeaHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *httperr.Error
	if !errors.As(err, &apiErr) {
		logger.Sugar.Errorw("unhandled error",
			"error", err,
			"correlation_id", middleware.CorrelationID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
		)
	}
	httperr.Write(w, middleware.CorrelationID(r.Context()), err)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
