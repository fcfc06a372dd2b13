package restclient

import (
	"context"
	"fmt"
	"net/http"

	domain "user-console/internal/domain/user"
)

const usersPath = "/users/"

// UserAPI wraps the five calls of the backend /users/ resource.
type UserAPI struct {
	client *Client
}

// NewUserAPI creates a UserAPI on top of client.
func NewUserAPI(client *Client) *UserAPI {
	return &UserAPI{client: client}
}

func userPath(id int64) string {
	return fmt.Sprintf("%s%d/", usersPath, id)
}

// List fetches every user.
func (a *UserAPI) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := a.client.do(ctx, http.MethodGet, usersPath, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get fetches a single user by ID.
func (a *UserAPI) Get(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := a.client.do(ctx, http.MethodGet, userPath(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create posts a new user and returns it with its assigned ID.
func (a *UserAPI) Create(ctx context.Context, in domain.Payload) (*domain.User, error) {
	var u domain.User
	if err := a.client.do(ctx, http.MethodPost, usersPath, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Update replaces the fields of user id.
func (a *UserAPI) Update(ctx context.Context, id int64, in domain.Payload) (*domain.User, error) {
	var u domain.User
	if err := a.client.do(ctx, http.MethodPut, userPath(id), in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes user id.
func (a *UserAPI) Delete(ctx context.Context, id int64) error {
	return a.client.do(ctx, http.MethodDelete, userPath(id), nil, nil)
}
