package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/bryanwahyu/pwncheck/internal/bootstrap"
	"github.com/bryanwahyu/pwncheck/internal/config"
	"github.com/bryanwahyu/pwncheck/internal/infra/httpserver"
	"github.com/bryanwahyu/pwncheck/internal/middleware"
)

func main() {
	// load config
	cfg, err := config.Load(bootstrap.ConfigPath())
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// init service
	svc, err := bootstrap.NewLookupService(ctx, cfg)
	if err != nil {
		log.Fatalf("service init error: %v", err)
	}

	// init metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	// init router
	handler := httpserver.NewRouter(svc, metrics, httpserver.Options{
		APIKeys:        cfg.Server.APIKeys,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Health: map[string]middleware.HealthChecker{
			"output_dir": &middleware.OutputDirChecker{Dir: cfg.Output.Dir},
		},
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // report generation includes the LLM call
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
