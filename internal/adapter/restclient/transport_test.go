package restclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func okResponse(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("OK")),
		Header:     http.Header{},
		Request:    req,
	}, nil
}

func tag(name string, order *[]string) Middleware {
	return func(next Responder) Responder {
		return func(req *http.Request) (*http.Response, error) {
			*order = append(*order, name)
			return next(req)
		}
	}
}

func TestTransport_MiddlewareOrder(t *testing.T) {
	var order []string
	transport := NewTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return okResponse(req)
	}), tag("first", &order))
	transport.Use(tag("second", &order))

	client := &http.Client{Transport: transport}
	resp, err := client.Get("http://backend.test/users/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, []string{"first", "second", "base"}, order)
}

func TestUserAgent(t *testing.T) {
	var got string
	transport := NewTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		got = req.Header.Get("User-Agent")
		return okResponse(req)
	}), UserAgent("user-console", "1.2.3"))

	resp, err := (&http.Client{Transport: transport}).Get("http://backend.test/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "user-console/1.2.3", got)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "error field", body: `{"error":"User not found"}`, want: "User not found"},
		{name: "detail field", body: `{"detail":"Method not allowed"}`, want: "Method not allowed"},
		{name: "field errors", body: `{"email":["Enter a valid email address."]}`, want: `{"email":["Enter a valid email address."]}`},
		{name: "plain text", body: " bad gateway \n", want: "bad gateway"},
		{name: "empty", body: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage([]byte(tt.body)))
		})
	}
}
