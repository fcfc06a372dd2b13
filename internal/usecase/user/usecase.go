package user

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-console/internal/domain/user"
	apperrors "user-console/pkg/errors"
	"user-console/pkg/logger"
)

// Screen holds the in-memory state of the user list and its single edit form.
// The list is never patched locally: every mutation is followed by a full refetch.
type Screen struct {
	api      UserAPI
	log      *zap.Logger
	validate *validator.Validate

	// mu guards state and is never held across a backend call
	mu    sync.Mutex
	state Snapshot
}

var _ Usecase = (*Screen)(nil)

// New creates a Screen backed by api.
func New(api UserAPI, log *zap.Logger) *Screen {
	return &Screen{
		api:      api,
		log:      log,
		validate: validator.New(),
		state:    Snapshot{Form: EmptyForm()},
	}
}

// formatValidationError converts validator.ValidationErrors into a human-readable error.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return apperrors.NewValidationError("", strings.Join(messages, ", "))
}

// Snapshot returns a copy of the current state.
func (s *Screen) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	if s.state.Users != nil {
		snap.Users = append([]domain.User(nil), s.state.Users...)
	}
	return snap
}

// Mount resets the form and loads the list, as when the screen is first shown.
func (s *Screen) Mount(ctx context.Context) error {
	s.mu.Lock()
	s.resetFormLocked()
	s.state.Mounted = true
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// EnsureMounted mounts the screen unless it already is. Concurrent callers
// mount it exactly once; the others return without a backend call.
func (s *Screen) EnsureMounted(ctx context.Context) error {
	s.mu.Lock()
	if s.state.Mounted {
		s.mu.Unlock()
		return nil
	}
	s.resetFormLocked()
	s.state.Mounted = true
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// Refresh replaces the list with a fresh fetch from the backend.
func (s *Screen) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()

	users, err := s.api.List(ctx)
	if err != nil {
		s.fail(ctx, "Failed to fetch users", err)
		return err
	}

	s.mu.Lock()
	s.state.Users = users
	s.state.Error = ""
	s.state.Loading = false
	s.mu.Unlock()

	logger.WithContext(ctx, s.log).Debug("users fetched", zap.Int("count", len(users)))
	return nil
}

// Submit creates a user in create mode or updates the edited one in edit mode,
// then resets the form and refetches the list.
func (s *Screen) Submit(ctx context.Context, form FormData) error {
	l := logger.WithContext(ctx, s.log)

	if err := s.validate.Struct(form); err != nil {
		verr := formatValidationError(err)
		l.Warn("validate failed", zap.Error(err))

		s.mu.Lock()
		s.state.Form = form
		s.state.FormError = verr.Error()
		s.mu.Unlock()
		return verr
	}

	s.mu.Lock()
	editingID := s.state.EditingID
	s.state.Form = form
	s.state.FormError = ""
	s.mu.Unlock()

	var err error
	if editingID != 0 {
		l.Info("updating user", zap.Int64("id", editingID), zap.String("username", form.Username))
		_, err = s.api.Update(ctx, editingID, form.Payload())
	} else {
		l.Info("creating user", zap.String("username", form.Username))
		_, err = s.api.Create(ctx, form.Payload())
	}
	if err != nil {
		s.fail(ctx, "Failed to save user", err)
		return err
	}

	s.mu.Lock()
	s.resetFormLocked()
	s.mu.Unlock()

	// A failed refetch is already reflected in the screen state
	_ = s.Refresh(ctx)
	return nil
}

// Edit switches the form to edit mode for user id. The row is taken from the
// current list, or fetched when the list does not hold it.
func (s *Screen) Edit(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("id", "invalid user id")
	}
	ctx = logger.WithUserID(ctx, id)

	s.mu.Lock()
	row, found := s.findLocked(id)
	s.mu.Unlock()

	if !found {
		u, err := s.api.Get(ctx, id)
		if err != nil {
			s.fail(ctx, "Failed to load user", err)
			return err
		}
		row = *u
	}

	s.mu.Lock()
	s.state.Form = FormFromUser(row)
	s.state.EditingID = row.ID
	s.state.FormError = ""
	s.mu.Unlock()

	logger.WithContext(ctx, s.log).Debug("editing user")
	return nil
}

// Delete removes user id once confirm agrees, then refetches the list.
// A declined confirmation leaves everything untouched.
func (s *Screen) Delete(ctx context.Context, id int64, confirm Confirmer) error {
	if id <= 0 {
		return apperrors.NewValidationError("id", "invalid user id")
	}
	ctx = logger.WithUserID(ctx, id)
	l := logger.WithContext(ctx, s.log)

	if confirm == nil || !confirm.Confirm(DeletePrompt) {
		l.Debug("delete not confirmed")
		return nil
	}

	l.Info("deleting user")
	if err := s.api.Delete(ctx, id); err != nil {
		s.fail(ctx, "Failed to delete user", err)
		return err
	}

	_ = s.Refresh(ctx)
	return nil
}

// Cancel leaves edit mode and clears the form without calling the backend.
func (s *Screen) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetFormLocked()
}

// fail replaces the page with an error message. Rows shown before are dropped.
func (s *Screen) fail(ctx context.Context, prefix string, err error) {
	logger.WithContext(ctx, s.log).Error(strings.ToLower(prefix), zap.Error(err))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = prefix + ": " + err.Error()
	s.state.Users = nil
	s.state.Loading = false
}

func (s *Screen) resetFormLocked() {
	s.state.Form = EmptyForm()
	s.state.EditingID = 0
	s.state.FormError = ""
}

func (s *Screen) findLocked(id int64) (domain.User, bool) {
	for _, u := range s.state.Users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}
