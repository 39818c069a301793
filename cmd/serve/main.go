/*
 * Copyright (C) 2023 by Jason Figge
 */

// Command serve renders frames over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ray-casting/internal/config"
	"ray-casting/internal/server"
)

func main() {
	cfg, err := config.FromFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	grid, err := cfg.LoadGrid()
	if err != nil {
		log.Fatalf("map: %v", err)
	}

	srv := server.New(grid, cfg.Settings(), cfg.Width, cfg.Height, cfg.StartPose())
	httpServer := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdown); err != nil {
			log.Printf("Error shutting down: %v", err)
		}
	}()

	log.Printf("Serving %dx%d map on %s", grid.Width(), grid.Height(), cfg.ServerAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
