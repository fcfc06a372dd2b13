package user

import (
	"context"

	domain "user-console/internal/domain/user"
)

// UserAPI defines the backend calls the screen depends on.
type UserAPI interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, in domain.Payload) (*domain.User, error)
	Update(ctx context.Context, id int64, in domain.Payload) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// Usecase defines the operations of the user list/form screen.
type Usecase interface {
	Mount(ctx context.Context) error
	EnsureMounted(ctx context.Context) error
	Refresh(ctx context.Context) error
	Submit(ctx context.Context, form FormData) error
	Edit(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64, confirm Confirmer) error
	Cancel()
	Snapshot() Snapshot
}

// Confirmer answers a blocking yes/no question before a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}
