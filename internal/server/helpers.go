package server

import (
  "encoding/json"
  "net/http"
  "strconv"
)

type statusResponse struct {
  Status  string `json:"status"`
  Message string `json:"message"`
}

// fallbackErrorBody is sent when a response payload cannot be encoded.
var fallbackErrorBody = []byte(`{"status":"error","message":"An internal error occurred."}` + "\n")

// writeJSON encodes payload before touching the response so an encoding
// failure still produces a well-formed 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, status int, payload any) {
  body, err := json.Marshal(payload)
  if err != nil {
    status = http.StatusInternalServerError
    body = fallbackErrorBody
  } else {
    body = append(body, '\n')
  }

  h := w.Header()
  h.Set("Content-Type", "application/json")
  h.Set("Content-Length", strconv.Itoa(len(body)))
  h.Set("Cache-Control", "no-store")
  w.WriteHeader(status)
  _, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
  writeJSON(w, status, statusResponse{Status: "error", Message: message})
}
