// Package health exposes the monitor's sensor health over the standard
// gRPC health checking protocol.
package health

import (
	"sync/atomic"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Service is the name reported for the sampling loop.
const Service = "printer_monitor.Sensor"

// Reporter reports SERVING while sensor reads succeed. It starts
// NOT_SERVING until the first good reading.
type Reporter struct {
	srv     *health.Server
	serving atomic.Bool
}

func NewReporter() *Reporter {
	srv := health.NewServer()
	srv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	srv.SetServingStatus(Service, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Reporter{srv: srv}
}

// Register adds the health service to g.
func (r *Reporter) Register(g *grpc.Server) {
	healthpb.RegisterHealthServer(g, r.srv)
}

// SetServing is called on every reading; only transitions reach the server.
func (r *Reporter) SetServing(ok bool) {
	if r.serving.Swap(ok) == ok {
		return
	}
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	r.srv.SetServingStatus(Service, st)
}

// Shutdown marks every service NOT_SERVING before the gRPC server stops.
func (r *Reporter) Shutdown() {
	r.srv.Shutdown()
}
