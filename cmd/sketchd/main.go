// Command sketchd serves the sketch studio to a browser shell over
// websockets.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/config"
	"github.com/gogpu/sketch/imagegen"
	"github.com/gogpu/sketch/server"
	"github.com/gogpu/sketch/studio"
)

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath, "config file")
		addr       = flag.String("addr", "", "listen address (overrides the config file)")
	)
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	sketch.SetLogger(logger)
	gin.SetMode(gin.ReleaseMode)

	srv, err := newServer(cfg)
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	logger.Info("sketchd: stopped")
}

func newServer(cfg config.Config) (*server.Server, error) {
	sketchOpts, err := cfg.SketchOptions()
	if err != nil {
		return nil, err
	}
	editorOpts, err := cfg.EditorOptions()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	factory := imagegen.GeminiFactory(imagegen.WithModel(cfg.Generator.Model))
	apiKey := cfg.APIKey()

	newStudio := func() *studio.Studio {
		return studio.New(
			studio.WithSketchOptions(sketchOpts...),
			studio.WithEditorOptions(editorOpts...),
			studio.WithFactory(factory),
			studio.WithCredentials(studio.NewMemoryCredentials(apiKey)),
		)
	}
	return server.New(newStudio,
		server.WithGenerateTimeout(timeout),
		server.WithCheckOrigin(server.AllowOrigins(cfg.Server.AllowedOrigins)),
	), nil
}
