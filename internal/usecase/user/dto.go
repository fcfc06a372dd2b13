package user

import (
	domain "user-console/internal/domain/user"
)

// DeletePrompt is the question asked before a user is deleted.
const DeletePrompt = "Are you sure you want to delete this user?"

// FormData is the state of the create/edit form.
type FormData struct {
	Username  string `form:"username" validate:"required"`
	Email     string `form:"email" validate:"required"`
	FirstName string `form:"first_name" validate:"required"`
	LastName  string `form:"last_name" validate:"required"`
	IsActive  bool   `form:"is_active"`
}

// EmptyForm returns the form of a fresh screen. New users are active by default.
func EmptyForm() FormData {
	return FormData{IsActive: true}
}

// FormFromUser fills the form with an existing user's fields.
func FormFromUser(u domain.User) FormData {
	return FormData{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
	}
}

// Payload converts the form into a create/update body.
func (f FormData) Payload() domain.Payload {
	return domain.Payload{
		Username:  f.Username,
		Email:     f.Email,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		IsActive:  f.IsActive,
	}
}

// Snapshot is a copy of the screen state taken for rendering.
type Snapshot struct {
	Users     []domain.User
	Loading   bool
	Error     string
	Form      FormData
	EditingID int64 // 0 while in create mode
	FormError string
	Mounted   bool
}

// Editing reports whether the form edits an existing user.
func (s Snapshot) Editing() bool {
	return s.EditingID != 0
}
