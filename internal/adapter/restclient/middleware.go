package restclient

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"user-console/pkg/logger"
)

// UserAgent sets the User-Agent header to "<app>/<version>".
func UserAgent(app, version string) Middleware {
	userAgent := fmt.Sprintf("%s/%s", app, version)
	return func(next Responder) Responder {
		return func(req *http.Request) (*http.Response, error) {
			req.Header.Set("User-Agent", userAgent)
			return next(req)
		}
	}
}

// RequestID forwards the request ID found in the request context as X-Request-ID.
func RequestID() Middleware {
	return func(next Responder) Responder {
		return func(req *http.Request) (*http.Response, error) {
			if id := logger.GetRequestID(req.Context()); id != "" && req.Header.Get(logger.RequestIDHeader) == "" {
				req.Header.Set(logger.RequestIDHeader, id)
			}
			return next(req)
		}
	}
}

// Logging logs every backend call with its status and latency.
func Logging(log *zap.Logger) Middleware {
	return func(next Responder) Responder {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next(req)

			l := logger.WithContext(req.Context(), log)
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("url", req.URL.String()),
				zap.Duration("latency", time.Since(start)),
			}
			if err != nil {
				l.Warn("backend request failed", append(fields, zap.Error(err))...)
				return nil, err
			}

			fields = append(fields, zap.Int("status", resp.StatusCode))
			if resp.StatusCode >= http.StatusBadRequest {
				l.Warn("backend request returned error status", fields...)
			} else {
				l.Debug("backend request", fields...)
			}
			return resp, nil
		}
	}
}
