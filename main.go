package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"monametro/internal/config"
	intdb "monametro/internal/db"
	api "monametro/internal/http"

	"github.com/gin-gonic/gin"
)

func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	conn, err := config.OpenDB(env)
	if err != nil {
		log.Fatalf("database unavailable: %v", err)
	}
	defer conn.Close()

	// Serving without a schema is never acceptable.
	if err := intdb.EnsureSchema(conn); err != nil {
		log.Fatalf("schema setup failed: %v", err)
	}
	if err := intdb.SeedBuses(conn); err != nil {
		log.Fatalf("route seed failed: %v", err)
	}

	r := api.NewRouter(env, conn)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Mona Metro portal listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly")
}
