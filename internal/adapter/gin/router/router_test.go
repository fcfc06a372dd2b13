package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"user-console/internal/adapter/gin/handler"
	"user-console/internal/adapter/gin/templates"
	"user-console/internal/adapter/restclient"
	domain "user-console/internal/domain/user"
	"user-console/internal/testutil"
	usecase "user-console/internal/usecase/user"
)

// ConsoleTestSuite drives the console through HTTP against an in-memory backend
type ConsoleTestSuite struct {
	suite.Suite
	backend *testutil.Backend
	screen  *usecase.Screen
	console http.Handler
}

func (s *ConsoleTestSuite) SetupTest() {
	log := zaptest.NewLogger(s.T())

	s.backend = testutil.NewBackend(s.T(),
		domain.User{ID: 1, Username: "ada", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", IsActive: true},
		domain.User{ID: 2, Username: "alan", Email: "alan@example.com", FirstName: "Alan", LastName: "Turing", IsActive: true},
	)

	client := restclient.New(restclient.Config{
		BaseURL:        s.backend.URL(),
		ServiceName:    "user-console",
		ServiceVersion: "test",
	}, nil, log)
	s.screen = usecase.New(restclient.NewUserAPI(client), log)

	views, err := templates.Load()
	s.Require().NoError(err)

	s.console = SetupRouter(handler.NewScreenHandler(s.screen, log), views, "user-console", log)
}

func (s *ConsoleTestSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.console.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (s *ConsoleTestSuite) post(path string, values url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.console.ServeHTTP(w, req)
	s.Require().Equal(http.StatusSeeOther, w.Code, w.Body.String())
	return w
}

func (s *ConsoleTestSuite) usernames() []string {
	var names []string
	for _, u := range s.backend.Users() {
		names = append(names, u.Username)
	}
	return names
}

func graceForm() url.Values {
	return url.Values{
		"username":   {"grace"},
		"email":      {"grace@example.com"},
		"first_name": {"Grace"},
		"last_name":  {"Hopper"},
		"is_active":  {"true"},
	}
}

func (s *ConsoleTestSuite) TestHealth() {
	w := s.get("/health")

	s.Equal(http.StatusOK, w.Code)
	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("healthy", body["status"])
	s.Equal("user-console", body["service"])
	s.Zero(s.backend.Calls(http.MethodGet), "health does not touch the backend")
}

func (s *ConsoleTestSuite) TestMountListsUsers() {
	body := s.get("/").Body.String()

	s.Contains(body, "Ada Lovelace")
	s.Contains(body, "Alan Turing")
	s.Equal(1, s.backend.Calls(http.MethodGet))

	s.get("/")
	s.Equal(1, s.backend.Calls(http.MethodGet), "a mounted screen is not refetched")

	s.get("/?reload=1")
	s.Equal(2, s.backend.Calls(http.MethodGet))
}

func (s *ConsoleTestSuite) TestCreateAppearsInList() {
	s.get("/")

	s.post("/users", graceForm())

	s.Contains(s.usernames(), "grace")
	body := s.get("/").Body.String()
	s.Contains(body, "Grace Hopper")
	s.Contains(body, "Create New User")
	snap := s.screen.Snapshot()
	s.Len(snap.Users, 3)
	s.Equal(usecase.EmptyForm(), snap.Form)
}

func (s *ConsoleTestSuite) TestUpdateReflectedInList() {
	s.get("/")

	s.post("/users/2/edit", nil)
	s.Contains(s.get("/").Body.String(), "Edit User")

	form := url.Values{
		"username":   {"alan"},
		"email":      {"turing@example.com"},
		"first_name": {"Alan"},
		"last_name":  {"Turing"},
	}
	s.post("/users", form)

	s.Equal(1, s.backend.Calls(http.MethodPut))
	s.Zero(s.backend.Calls(http.MethodPost))

	body := s.get("/").Body.String()
	s.Contains(body, "turing@example.com")
	s.Contains(body, "Inactive")
	s.NotContains(body, "Edit User")
}

func (s *ConsoleTestSuite) TestDeleteRemovedFromList() {
	s.get("/")

	confirm := s.get("/users/1/delete")
	s.Equal(http.StatusOK, confirm.Code)
	s.Contains(confirm.Body.String(), usecase.DeletePrompt)
	s.Zero(s.backend.Calls(http.MethodDelete), "asking is not deleting")

	s.post("/users/1/delete", url.Values{"confirm": {"yes"}})

	s.Equal([]string{"alan"}, s.usernames())
	s.NotContains(s.get("/").Body.String(), "ada@example.com")
}

func (s *ConsoleTestSuite) TestDeclinedDeleteKeepsUser() {
	s.get("/")

	s.post("/users/1/delete", url.Values{"confirm": {"no"}})

	s.Zero(s.backend.Calls(http.MethodDelete))
	s.Equal([]string{"ada", "alan"}, s.usernames())
}

func (s *ConsoleTestSuite) TestFailedListShowsError() {
	s.backend.FailNext(http.MethodGet, http.StatusInternalServerError)

	body := s.get("/").Body.String()

	s.Contains(body, "Error: Failed to fetch users: request failed with status code 500: injected failure")
	s.NotContains(body, "ada@example.com")
	s.NotContains(body, "<table>")
	s.Empty(s.screen.Snapshot().Users)

	// Reload recovers
	s.Contains(s.get("/?reload=1").Body.String(), "ada@example.com")
}

func (s *ConsoleTestSuite) TestCancelDoesNotMutate() {
	s.get("/")
	s.post("/users/1/edit", nil)
	s.Require().True(s.screen.Snapshot().Editing())

	s.post("/cancel", nil)

	snap := s.screen.Snapshot()
	s.False(snap.Editing())
	s.Equal(usecase.EmptyForm(), snap.Form)
	s.Zero(s.backend.MutationCalls())
	s.Contains(s.get("/").Body.String(), "Create New User")
}

func (s *ConsoleTestSuite) TestSaveFailureShowsError() {
	s.get("/")
	form := graceForm()
	form.Set("username", "ada")

	s.post("/users", form)

	body := s.get("/").Body.String()
	s.Contains(body, "Error: Failed to save user: request failed with status code 400: Username already exists")
	s.NotContains(body, "alan@example.com")
}

func (s *ConsoleTestSuite) TestMissingRequiredField() {
	s.get("/")
	form := graceForm()
	form.Del("email")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.console.ServeHTTP(w, req)

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Contains(w.Body.String(), "Email is required")
	s.Contains(w.Body.String(), `value="grace"`)
	s.Zero(s.backend.MutationCalls())
}

func (s *ConsoleTestSuite) TestRequestIDForwardedToBackend() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "trace-me")
	s.console.ServeHTTP(w, req)

	s.Equal("trace-me", w.Header().Get("X-Request-ID"))
	s.Equal("trace-me", s.backend.LastHeader().Get("X-Request-ID"))
}

func TestConsoleTestSuite(t *testing.T) {
	suite.Run(t, new(ConsoleTestSuite))
}

func TestSetupRouter_UnknownRoute(t *testing.T) {
	views, err := templates.Load()
	require.NoError(t, err)
	log := zaptest.NewLogger(t)

	r := SetupRouter(handler.NewScreenHandler(usecase.New(nil, log), log), views, "user-console", log)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
