package server

import (
  "fmt"
  "net/http"

  "game-agent/internal/launch"
  "game-agent/internal/metrics"
)

type healthResponse struct {
  Status  string `json:"status"`
  Service string `json:"service"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
  writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Service: serviceName})
}

func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request) {
  appID, err := s.launcher.HandleRequest(r.Body)
  if err != nil {
    s.writeLaunchError(w, err)
    return
  }

  metrics.LaunchRequestsTotal.WithLabelValues(launch.ErrorKind(nil)).Inc()
  writeJSON(w, http.StatusOK, statusResponse{
    Status:  "success",
    Message: fmt.Sprintf("Launch command issued for app_id %s.", appID),
  })
}

func (s *Server) writeLaunchError(w http.ResponseWriter, err error) {
  metrics.LaunchRequestsTotal.WithLabelValues(launch.ErrorKind(err)).Inc()
  writeError(w, launchErrorStatus(err), launch.ErrorMessage(err))
}

func launchErrorStatus(err error) int {
  if launch.IsClientError(err) {
    return http.StatusBadRequest
  }
  return http.StatusInternalServerError
}
