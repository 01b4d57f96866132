// Command server runs the recording/playback engine headless, exposing it
// over HTTP: a command endpoint for remote input, a status endpoint, a
// WebSocket stream of frame results, and a Prometheus metrics endpoint.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"arenic/internal/engine"
	"arenic/internal/httpapi"
	"arenic/internal/telemetry"
	"arenic/logging"
	loggingsinks "arenic/logging/sinks"
)

func main() {
	stdlog := log.New(os.Stderr, "", log.LstdFlags)
	if err := run(stdlog); err != nil {
		stdlog.Fatalf("arenic server: %v", err)
	}
}

func run(stdlog *log.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logCfg := logging.DefaultConfig()
	sinks := map[string]logging.Sink{
		"console": loggingsinks.NewConsole(os.Stdout),
	}
	router, err := logging.NewRouter(logCfg, logging.SystemClock{}, stdlog, sinks)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := router.Close(ctx); cerr != nil {
			stdlog.Printf("failed to close logging router: %v", cerr)
		}
	}()

	logger := telemetry.WrapLogger(stdlog)
	eng := engine.New(engine.Deps{Logger: logger, Publisher: router})

	metrics := httpapi.NewMetrics(prometheus.DefaultRegisterer)
	hub := httpapi.NewHub(logger, metrics)
	hubDone := make(chan struct{})
	go hub.Run(hubDone)
	defer close(hubDone)

	loopDone := make(chan struct{})
	go runFrameLoop(ctx, eng, hub, metrics, loopDone)
	defer func() { <-loopDone }()

	r := httpapi.NewRouter(httpapi.RouterConfig{
		Engine:  eng,
		Hub:     hub,
		Logger:  logger,
		Metrics: metrics,
	})

	srv := &http.Server{Addr: ":8080", Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	stdlog.Printf("arenic server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
