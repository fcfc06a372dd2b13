// Package testutil provides an in-memory users backend for tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	domain "user-console/internal/domain/user"
)

// Backend is an in-memory implementation of the /users/ REST resource.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	users    map[int64]domain.User
	nextID   int64
	failures map[string]int // method -> status to answer with once
	calls    map[string]int // method -> number of calls
	headers  []http.Header
}

// NewBackend starts a Backend serving under /api and stops it when the test ends.
func NewBackend(t testing.TB, seed ...domain.User) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &Backend{
		users:    make(map[int64]domain.User),
		nextID:   1,
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}
	for _, u := range seed {
		b.put(u)
	}

	r := gin.New()
	r.Use(b.record)
	users := r.Group("/api/users")
	{
		users.GET("/", b.list)
		users.POST("/", b.create)
		users.GET("/:id/", b.get)
		users.PUT("/:id/", b.update)
		users.DELETE("/:id/", b.delete)
	}

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the base URL the console should be configured with.
func (b *Backend) URL() string {
	return b.Server.URL + "/api"
}

// FailNext makes the next request with method answer with status.
func (b *Backend) FailNext(method string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method] = status
}

// Calls returns how many requests with method were received.
func (b *Backend) Calls(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[method]
}

// MutationCalls returns the number of POST, PUT and DELETE requests received.
func (b *Backend) MutationCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[http.MethodPost] + b.calls[http.MethodPut] + b.calls[http.MethodDelete]
}

// LastHeader returns the headers of the most recent request.
func (b *Backend) LastHeader() http.Header {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.headers) == 0 {
		return nil
	}
	return b.headers[len(b.headers)-1]
}

// Users returns the stored users ordered by ID.
func (b *Backend) Users() []domain.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sorted()
}

func (b *Backend) put(u domain.User) domain.User {
	if u.ID == 0 {
		u.ID = b.nextID
	}
	if u.ID >= b.nextID {
		b.nextID = u.ID + 1
	}
	b.users[u.ID] = u
	return u
}

func (b *Backend) sorted() []domain.User {
	out := make([]domain.User, 0, len(b.users))
	for _, u := range b.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (b *Backend) record(c *gin.Context) {
	b.mu.Lock()
	method := c.Request.Method
	b.calls[method]++
	b.headers = append(b.headers, c.Request.Header.Clone())
	status, fail := b.failures[method]
	delete(b.failures, method)
	b.mu.Unlock()

	if fail {
		c.AbortWithStatusJSON(status, gin.H{"error": "injected failure"})
		return
	}
	c.Next()
}

func (b *Backend) list(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, b.sorted())
}

func (b *Backend) create(c *gin.Context) {
	var in domain.Payload
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.Username == in.Username {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
	}
	u := b.put(fromPayload(0, in))
	c.JSON(http.StatusCreated, u)
}

func (b *Backend) get(c *gin.Context) {
	id, ok := b.id(c)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u, found := b.users[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (b *Backend) update(c *gin.Context) {
	id, ok := b.id(c)
	if !ok {
		return
	}
	var in domain.Payload
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.users[id]; !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		return
	}
	u := b.put(fromPayload(id, in))
	c.JSON(http.StatusOK, u)
}

func (b *Backend) delete(c *gin.Context) {
	id, ok := b.id(c)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.users[id]; !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	delete(b.users, id)
	c.Status(http.StatusNoContent)
}

func (b *Backend) id(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return 0, false
	}
	return id, true
}

func fromPayload(id int64, in domain.Payload) domain.User {
	return domain.User{
		ID:        id,
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsActive:  in.IsActive,
	}
}
