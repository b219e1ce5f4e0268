package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/specialistvlad/plugbuild/internal/ctxlog"
)

type healthResponse struct {
	Status      string            `json:"status"`
	Built       int               `json:"built"`
	Failed      int               `json:"failed"`
	Diagnostics []string          `json:"diagnostics"`
	Components  []ComponentStatus `json:"components"`
}

// healthHandler serves the build report: 200 when everything was built
// cleanly, 503 otherwise.
func (a *App) healthHandler(report *Report) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)

		resp := healthResponse{
			Status:      "ok",
			Built:       report.Built(),
			Failed:      report.Failed(),
			Diagnostics: []string{},
			Components:  report.Components(),
		}
		for _, d := range report.Diagnostics() {
			resp.Diagnostics = append(resp.Diagnostics, d.Error())
		}
		code := http.StatusOK
		if report.HasErrors() {
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			a.logger.Error("Failed to encode health response.", "error", err)
		}
	}
}

// serveHealthcheck runs the health check HTTP server until ctx is done.
func (a *App) serveHealthcheck(ctx context.Context, report *Report) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Configuring health check server.")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler(report))

	addr := fmt.Sprintf(":%d", a.config.HealthcheckPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start health check server: %w", err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// ErrServerClosed is the normal result of Shutdown.
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Health check server failed unexpectedly", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down health check server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Health check server shutdown failed", "error", err)
		return err
	}
	logger.Debug("Health check server shut down gracefully.")
	return nil
}
