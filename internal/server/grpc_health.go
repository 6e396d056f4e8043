package server

import (
  "context"
  "net"

  "google.golang.org/grpc"
  "google.golang.org/grpc/health"
  healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// healthServer exposes the same liveness answer as GET /health over the
// standard grpc.health.v1 protocol, for supervisors that check health over gRPC.
type healthServer struct {
  grpc   *grpc.Server
  health *health.Server
}

func newHealthServer() *healthServer {
  hs := health.NewServer()
  hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
  hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

  gs := grpc.NewServer()
  healthpb.RegisterHealthServer(gs, hs)
  return &healthServer{grpc: gs, health: hs}
}

func (h *healthServer) Serve(lis net.Listener) error {
  return h.grpc.Serve(lis)
}

// Stop drains in-flight RPCs until ctx is done, then closes whatever is left.
// Watch streams never finish on their own, so the hard stop is what ends them.
func (h *healthServer) Stop(ctx context.Context) {
  h.health.Shutdown()

  done := make(chan struct{})
  go func() {
    h.grpc.GracefulStop()
    close(done)
  }()

  select {
  case <-done:
  case <-ctx.Done():
    h.grpc.Stop()
    <-done
  }
}
