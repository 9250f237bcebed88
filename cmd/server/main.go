package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kegliz/qreduce/internal/app"
	"github.com/kegliz/qreduce/internal/config"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml, json, toml); optional")
	flag.Parse()

	c, err := config.Load(config.Options{Path: *configPath})
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	srv, err := app.NewServer(app.ServerOptions{C: c, Version: version})
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	go func() {
		if err := srv.Listen(c.GetInt("port"), c.GetBool("local_only")); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
}
