package user

import (
	"encoding/json"
	"net/http"

	"creatorvault/middleware"
)

type Profile struct {
	UserID        string `json:"user_id"`
	Authenticated bool   `json:"authenticated"`
}

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me echoes the verified identity back to the caller.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Profile{
		UserID:        middleware.UserID(r.Context()),
		Authenticated: true,
	})
}
