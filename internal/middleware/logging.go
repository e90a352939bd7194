package middleware

import (
	"fmt"
	"net/http"
	"time"

	"booking-system/airline/internal/common"
	"booking-system/airline/internal/logging"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recoverer is chi's Recoverer with a zap log entry and a JSON 500 body.
// Any open transaction has already been rolled back by the time the panic
// reaches here.
func Recoverer(next http.Handler) http.Handler {
	recoverer := chimw.Recoverer(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &recoverWriter{ResponseWriter: w}
		recoverer.ServeHTTP(rw, chimw.WithLogEntry(r, &panicLogEntry{rw: rw, r: r}))
	})
}

// recoverWriter replaces the bare status chi writes after a panic with the
// server error envelope, unless the handler already started its response.
type recoverWriter struct {
	http.ResponseWriter
	panicked    bool
	wroteHeader bool
}

func (w *recoverWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	if w.panicked {
		common.RespondError(w.ResponseWriter, time.Now(), common.NewServerError(nil))
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *recoverWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// panicLogEntry implements chi's LogEntry. Access lines come from
// MetricsMiddleware, so only Panic logs.
type panicLogEntry struct {
	rw *recoverWriter
	r  *http.Request
}

func (e *panicLogEntry) Write(int, int, http.Header, time.Duration, interface{}) {}

func (e *panicLogEntry) Panic(v interface{}, stack []byte) {
	e.rw.panicked = true
	logging.Error("panic while serving request",
		"request_id", GetRequestID(e.r.Context()),
		"method", e.r.Method,
		"path", e.r.URL.Path,
		"panic", fmt.Sprint(v),
		"stack", string(stack),
	)
}
