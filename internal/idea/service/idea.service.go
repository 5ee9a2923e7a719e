package service

import (
	"database/sql"
	"encoding/json"
	"time"

	"creatorvault/internal/idea/model"
	"creatorvault/internal/idea/repository"
	"creatorvault/pkg/httperr"
	"creatorvault/pkg/logger"
	"creatorvault/socket"

	"github.com/google/uuid"
)

// IdeaStore is the owner-scoped persistence contract. Every operation takes
// the owner identity; there is deliberately no unscoped variant.
type IdeaStore interface {
	Create(idea *model.Idea) error
	GetByIDAndOwner(id, ownerID string) (*model.Idea, error)
	ListByOwner(ownerID string, q repository.ListQuery) ([]model.Idea, int, error)
	Update(idea *model.Idea) error
	DeleteByIDAndOwner(id, ownerID string) (bool, error)
}

type IdeaService struct {
	Store IdeaStore
	Hub   *socket.Hub // nil disables event publishing
}

func NewIdeaService(store IdeaStore, hub *socket.Hub) *IdeaService {
	return &IdeaService{Store: store, Hub: hub}
}

// Create builds a fresh idea for ownerID. The owner always comes from the
// verified caller; any client-supplied owner is ignored upstream.
func (s *IdeaService) Create(ownerID string, req model.CreateIdeaRequest) (*model.Idea, error) {
	title, err := model.NormalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if err := model.ValidateNotes(req.Notes); err != nil {
		return nil, err
	}

	stage := req.Stage
	if stage == "" {
		stage = model.StageIdea
	}
	if !stage.Valid() {
		return nil, httperr.Validation("stage must be one of idea, outline, draft, published")
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, httperr.Validation("priority must be one of high, medium, low")
	}

	now := time.Now().UTC()
	idea := &model.Idea{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Title:     title,
		Notes:     req.Notes,
		Stage:     stage,
		Priority:  priority,
		Tags:      model.NormalizeTags(req.Tags),
		DueDate:   req.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Create(idea); err != nil {
		return nil, err
	}

	logger.Sugar.Infow("idea created", "idea_id", idea.ID, "user_id", ownerID)
	s.publish(socket.IdeaCreatedType, ownerID, idea)
	return idea, nil
}

// Get collapses "does not exist" and "belongs to another owner" into one
// not-found outcome so existence never leaks.
func (s *IdeaService) Get(id, ownerID string) (*model.Idea, error) {
	idea, err := s.Store.GetByIDAndOwner(id, ownerID)
	if err != nil {
		return nil, err
	}
	if idea == nil {
		logger.Sugar.Warnw("idea not found or unauthorized", "idea_id", id, "user_id", ownerID)
		return nil, httperr.NotFound("idea not found")
	}
	return idea, nil
}

func (s *IdeaService) List(ownerID string, q repository.ListQuery) (*model.IdeaPage, error) {
	// Out-of-range limits are clamped, not rejected.
	if q.Limit < 1 {
		q.Limit = 1
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	items, total, err := s.Store.ListByOwner(ownerID, q)
	if err != nil {
		return nil, err
	}

	return &model.IdeaPage{
		Items:   items,
		Total:   total,
		Limit:   q.Limit,
		Offset:  q.Offset,
		HasMore: q.Offset+len(items) < total,
	}, nil
}

// Update applies a partial patch: fields absent from the body stay
// untouched, explicit nulls clear notes, due_date and tags. The patch shape
// is validated up front so malformed bodies never issue a query.
func (s *IdeaService) Update(id, ownerID string, patch *model.UpdateIdeaRequest) (*model.Idea, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	idea, err := s.Get(id, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Has("title") {
		title, err := model.NormalizeTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		idea.Title = title
	}
	if patch.Has("notes") {
		idea.Notes = patch.Notes
	}
	if patch.Has("stage") {
		idea.Stage = *patch.Stage
	}
	if patch.Has("priority") {
		idea.Priority = *patch.Priority
	}
	if patch.Has("tags") {
		if patch.Tags == nil {
			idea.Tags = []string{}
		} else {
			idea.Tags = model.NormalizeTags(*patch.Tags)
		}
	}
	if patch.Has("due_date") {
		idea.DueDate = patch.DueDate
	}

	idea.UpdatedAt = time.Now().UTC()

	if err := s.Store.Update(idea); err != nil {
		if err == sql.ErrNoRows {
			return nil, httperr.NotFound("idea not found")
		}
		return nil, err
	}

	logger.Sugar.Infow("idea updated", "idea_id", id, "user_id", ownerID)
	s.publish(socket.IdeaUpdatedType, ownerID, idea)
	return idea, nil
}

// Replace overwrites every field from the input, applying create defaults
// for omitted optionals. ID, owner and created_at are preserved.
func (s *IdeaService) Replace(id, ownerID string, req model.CreateIdeaRequest) (*model.Idea, error) {
	idea, err := s.Get(id, ownerID)
	if err != nil {
		return nil, err
	}

	title, err := model.NormalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if err := model.ValidateNotes(req.Notes); err != nil {
		return nil, err
	}

	stage := req.Stage
	if stage == "" {
		stage = model.StageIdea
	}
	if !stage.Valid() {
		return nil, httperr.Validation("stage must be one of idea, outline, draft, published")
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, httperr.Validation("priority must be one of high, medium, low")
	}

	idea.Title = title
	idea.Notes = req.Notes
	idea.Stage = stage
	idea.Priority = priority
	idea.Tags = model.NormalizeTags(req.Tags)
	idea.DueDate = req.DueDate
	idea.UpdatedAt = time.Now().UTC()

	if err := s.Store.Update(idea); err != nil {
		if err == sql.ErrNoRows {
			return nil, httperr.NotFound("idea not found")
		}
		return nil, err
	}

	logger.Sugar.Infow("idea replaced", "idea_id", id, "user_id", ownerID)
	s.publish(socket.IdeaUpdatedType, ownerID, idea)
	return idea, nil
}

func (s *IdeaService) Delete(id, ownerID string) error {
	deleted, err := s.Store.DeleteByIDAndOwner(id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		logger.Sugar.Warnw("idea not found for deletion", "idea_id", id, "user_id", ownerID)
		return httperr.NotFound("idea not found")
	}

	logger.Sugar.Infow("idea deleted", "idea_id", id, "user_id", ownerID)
	s.publish(socket.IdeaDeletedType, ownerID, map[string]string{"id": id})
	return nil
}

func (s *IdeaService) publish(eventType, ownerID string, payload interface{}) {
	if s.Hub == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Sugar.Errorf("Failed to marshal %s event: %v", eventType, err)
		return
	}
	s.Hub.Broadcast <- socket.Event{Type: eventType, UserID: ownerID, Payload: data}
}
