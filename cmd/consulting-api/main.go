package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"

	"github.com/growthphysics/consulting-os/internal/analytics"
	"github.com/growthphysics/consulting-os/internal/diagstore"
	"github.com/growthphysics/consulting-os/internal/httpapi"
	"github.com/growthphysics/consulting-os/internal/telemetry"
)

func main() {
	_ = godotenv.Load()

	var (
		addr         = flag.String("addr", envOr("ADDR", ":8080"), "API listen address")
		dbPath       = flag.String("db", envOr("DB_PATH", "./consulting.db"), "SQLite path for diagnosis history (empty disables history)")
		otlpEndpoint = flag.String("otlp-endpoint", os.Getenv("OTLP_ENDPOINT"), "OTLP/HTTP collector endpoint for traces (empty disables export)")
		noAnalytics  = flag.Bool("no-analytics", false, "Disable journey analytics tracking")
	)
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	shutdownTraces, err := telemetry.Setup(ctx, "consulting-api", strings.TrimSpace(*otlpEndpoint))
	if err != nil {
		log.Fatalf("tracing setup: %v", err)
	}
	defer func() {
		if err := shutdownTraces(context.Background()); err != nil {
			log.Printf("warning: trace shutdown: %v", err)
		}
	}()

	var store httpapi.DiagnosisStore
	if strings.TrimSpace(*dbPath) != "" {
		s, err := diagstore.NewStore(*dbPath)
		if err != nil {
			log.Fatalf("open diagnosis store: %v", err)
		}
		defer s.Close()
		store = s
	} else {
		log.Print("diagnosis history disabled (no -db)")
	}

	var tracker analytics.Service = analytics.NewStore()
	if *noAnalytics {
		tracker = analytics.NopService{}
	}

	handler := telemetry.Middleware(httpapi.NewServer(store, tracker))

	log.Printf("consulting-api listening on %s (db=%s)", *addr, *dbPath)
	srv := &http.Server{Addr: *addr, Handler: handler}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
