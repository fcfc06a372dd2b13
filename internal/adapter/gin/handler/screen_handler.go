package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-console/internal/adapter/gin/templates"
	domain "user-console/internal/domain/user"
	"user-console/internal/usecase/user"
	apperrors "user-console/pkg/errors"
)

// ScreenHandler renders the user management screen and maps form posts onto it
type ScreenHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewScreenHandler creates a new ScreenHandler instance
func NewScreenHandler(uc user.Usecase, log *zap.Logger) *ScreenHandler {
	return &ScreenHandler{
		uc:  uc,
		log: log,
	}
}

// PageView is the data of the main page
type PageView struct {
	State user.Snapshot
}

// ConfirmDeleteView is the data of the delete confirmation page
type ConfirmDeleteView struct {
	ID     int64
	Prompt string
	User   *domain.User
}

// Index handles GET /
// The screen is mounted on the first visit and whenever ?reload is set.
func (h *ScreenHandler) Index(c *gin.Context) {
	// Failures end up in the rendered state
	if c.Query("reload") != "" {
		_ = h.uc.Mount(c.Request.Context())
	} else {
		_ = h.uc.EnsureMounted(c.Request.Context())
	}
	h.renderPage(c, http.StatusOK)
}

// Submit handles POST /users
func (h *ScreenHandler) Submit(c *gin.Context) {
	var form user.FormData
	if err := c.ShouldBind(&form); err != nil {
		h.log.Warn("Invalid user form", zap.Error(err))
		c.String(http.StatusBadRequest, "invalid form: %s", err.Error())
		return
	}

	err := h.uc.Submit(c.Request.Context(), form)
	var verr *apperrors.ValidationError
	if apperrors.As(err, &verr) {
		h.renderPage(c, verr.HTTPStatus())
		return
	}
	h.backToScreen(c)
}

// Edit handles POST /users/:id/edit
func (h *ScreenHandler) Edit(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	_ = h.uc.Edit(c.Request.Context(), id)
	h.backToScreen(c)
}

// ConfirmDelete handles GET /users/:id/delete
func (h *ScreenHandler) ConfirmDelete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	view := ConfirmDeleteView{ID: id, Prompt: user.DeletePrompt}
	for _, u := range h.uc.Snapshot().Users {
		if u.ID == id {
			view.User = &u
			break
		}
	}
	c.HTML(http.StatusOK, templates.ConfirmDelete, view)
}

// Delete handles POST /users/:id/delete
// The user is only deleted when the confirmation form answered "yes".
func (h *ScreenHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	answer := c.PostForm("confirm")
	_ = h.uc.Delete(c.Request.Context(), id, user.ConfirmFunc(func(string) bool {
		return answer == "yes"
	}))
	h.backToScreen(c)
}

// Cancel handles POST /cancel
func (h *ScreenHandler) Cancel(c *gin.Context) {
	h.uc.Cancel()
	h.backToScreen(c)
}

func (h *ScreenHandler) renderPage(c *gin.Context, status int) {
	c.HTML(status, templates.Page, PageView{State: h.uc.Snapshot()})
}

// backToScreen redirects to the page after a form post
func (h *ScreenHandler) backToScreen(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *ScreenHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.log.Warn("Invalid user ID", zap.String("id", idStr))
		c.String(http.StatusBadRequest, "User ID must be a valid number")
		return 0, false
	}
	return id, true
}
