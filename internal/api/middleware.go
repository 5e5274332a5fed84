package api

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"routeviz/internal/logging"
	"routeviz/internal/metrics"
)

type ctxKeyRequestID struct{}

// RequestID returns the id assigned to the request by Middleware.
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return v
}

// statusRecorder captures the response status. It keeps Flush and Hijack
// available for streaming and websocket handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := r.ResponseWriter.(http.Hijacker); ok {
		r.status = http.StatusSwitchingProtocols
		return h.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// Middleware assigns request ids, applies the rate limit, records metrics and
// logs one line per request. A nil limiter disables rate limiting.
func Middleware(next http.Handler, log *zap.Logger, limiter *rate.Limiter) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rid := r.Header.Get("X-Request-Id")
		if rid == "" {
			rid = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", rid)
		r = r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID{}, rid))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		if limiter != nil && !limiter.Allow() {
			writeProblem(rec, r, http.StatusTooManyRequests, "Too Many Requests", "rate limit exceeded")
		} else {
			next.ServeHTTP(rec, r)
		}

		dur := time.Since(start)
		path := pathLabel(r.URL.Path)
		status := strconv.Itoa(rec.status)
		metrics.HTTPRequests.WithLabelValues(r.Method, path, status).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, path, status).Observe(dur.Seconds())
		log.Info("request",
			zap.String(logging.FieldRequestID, rid),
			zap.String(logging.FieldMethod, r.Method),
			zap.String(logging.FieldPath, r.URL.Path),
			zap.Int(logging.FieldStatus, rec.status),
			zap.Int64(logging.FieldDurationMS, dur.Milliseconds()),
		)
	})
}

// NewLimiter returns a token bucket for rps requests per second, or nil when rps is 0.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = int(rps) + 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// pathLabel collapses vehicle ids so the metric label set stays bounded.
func pathLabel(p string) string {
	if rest, ok := strings.CutPrefix(p, "/v1/vehicles/"); ok && rest != "" {
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) == 2 && parts[1] != "" {
			return "/v1/vehicles/:id/" + parts[1]
		}
		return "/v1/vehicles/:id"
	}
	if strings.HasPrefix(p, "/static/") {
		return "/static"
	}
	return p
}
