package server

import (
  "net/http"
  "time"
)

// requestLogger writes one access line per request once the handler is done.
func (s *Server) requestLogger() func(http.Handler) http.Handler {
  return func(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
      start := time.Now()
      rec := &statusRecorder{ResponseWriter: w}

      next.ServeHTTP(rec, r)

      s.logger.Printf(
        "http: method=%s path=%s remote=%s status=%d bytes=%d duration_ms=%d",
        r.Method,
        r.URL.Path,
        r.RemoteAddr,
        rec.Status(),
        rec.bytes,
        time.Since(start).Milliseconds(),
      )
    })
  }
}

type statusRecorder struct {
  http.ResponseWriter
  status int
  bytes  int
}

func (w *statusRecorder) WriteHeader(status int) {
  if w.status == 0 {
    w.status = status
  }
  w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
  if w.status == 0 {
    w.status = http.StatusOK
  }
  n, err := w.ResponseWriter.Write(b)
  w.bytes += n
  return n, err
}

// Status is the code sent to the client; a handler that never wrote gets 200
// from net/http.
func (w *statusRecorder) Status() int {
  if w.status == 0 {
    return http.StatusOK
  }
  return w.status
}
