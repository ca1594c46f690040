// Package trainstream is the read API surface of the train stream store.
package trainstream

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theoremus-urban-solutions/train-stream/store"
)

var server *http.Server

// StartServer starts the read API in a background goroutine.
func StartServer(port int, st *store.Store) {
	addr := fmt.Sprintf(":%d", port)
	server = &http.Server{
		Addr:              addr,
		Handler:           Handler(st, time.Now()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM, then runs onShutdown
// (cancelling the ingest streams and scheduler) and drains the HTTP server.
func HandleGracefulShutdown(onShutdown func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")

	if onShutdown != nil {
		onShutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
}
