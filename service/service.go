// Package service hosts the sidecar HTTP endpoints of the test service:
// liveness and Prometheus metrics.
package service

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/ethereum/go-ethereum/log"

	"github.com/embedded-infra/ret/metrics"
)

const (
	HealthzHost = "0.0.0.0"
	HealthzPort = "8080"

	MetricsHost = "0.0.0.0"
	MetricsPort = "7300"
)

type Service struct {
	Healthz *HealthzServer
	Metrics *MetricsServer

	healthzAddr string
}

// New creates the sidecar service. healthzAddr overrides the default
// health endpoint address when non-empty.
func New(healthzAddr string) *Service {
	if healthzAddr == "" {
		healthzAddr = net.JoinHostPort(HealthzHost, HealthzPort)
	}
	return &Service{
		Healthz:     &HealthzServer{},
		Metrics:     &MetricsServer{},
		healthzAddr: healthzAddr,
	}
}

func (s *Service) Start(ctx context.Context) {
	log.Info("service starting")

	go func() {
		log.Info("starting healthz server", "addr", s.healthzAddr)
		if err := s.Healthz.Start(ctx, s.healthzAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("error starting healthz server", "err", err)
			metrics.RecordErrorDetails("error starting healthz server", err)
		}
	}()

	go func() {
		addr := net.JoinHostPort(MetricsHost, MetricsPort)
		log.Info("starting metrics server", "addr", addr)
		if err := s.Metrics.Start(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("error starting metrics server", "err", err)
			metrics.RecordErrorDetails("error starting metrics server", err)
		}
	}()

	log.Info("service started")
}

func (s *Service) Shutdown() {
	log.Info("service shutting down")

	_ = s.Healthz.Shutdown()
	log.Info("healthz stopped")

	_ = s.Metrics.Shutdown()
	log.Info("metrics stopped")

	log.Info("service stopped")
}
