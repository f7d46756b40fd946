package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bitbucket.org/kleinnic74/geodist/consts"
	"bitbucket.org/kleinnic74/geodist/logging"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Number of HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

func WithMiddleWares(handler http.Handler, name string) http.Handler {
	return cors(addRequestID(logRequest(handler, name)))
}

type responseWrapper struct {
	writer http.ResponseWriter
	status int
}

func wrap(w http.ResponseWriter) *responseWrapper {
	return &responseWrapper{writer: w, status: http.StatusOK}
}

func (w *responseWrapper) Header() http.Header {
	return w.writer.Header()
}

func (w *responseWrapper) Write(data []byte) (int, error) {
	return w.writer.Write(data)
}

func (w *responseWrapper) WriteHeader(status int) {
	w.status = status
	w.writer.WriteHeader(status)
}

func logRequest(f http.Handler, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rid := RequestID(r.Context())
		log := logging.From(r.Context()).With(zap.String("request", rid))
		ctx := logging.Context(r.Context(), log)
		wrapper := wrap(w)
		defer func() {
			log.Named(name).Info("HTTP Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)),
				zap.Int("status", wrapper.status))
		}()
		f.ServeHTTP(wrapper, r.WithContext(ctx))
	})
}

type requestIDKeyType int

const requestIDKey = requestIDKeyType(0)

// RequestID returns the id assigned to the request by the middleware chain.
func RequestID(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey).(string)
	return rid
}

func addRequestID(f http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
			r.Header.Set("X-Request-ID", rid)
		}
		w.Header().Set("X-Request-ID", rid)
		ctx := context.WithValue(r.Context(), requestIDKey, rid)
		f.ServeHTTP(w, r.WithContext(ctx))
	})
}

// instrument runs inside the router so the matched route template is known.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unknown"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		start := time.Now()
		wrapper := wrap(w)
		next.ServeHTTP(wrapper, r)
		requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(wrapper.status)).Inc()
		requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func cors(h http.Handler) http.Handler {
	if consts.IsDevMode() {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Access-Control-Allow-Origin", "*")
			h.ServeHTTP(w, r)
		})
	} else {
		return h
	}
}
