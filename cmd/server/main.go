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

	"pgfeaturediff-server/internal/config"
	"pgfeaturediff-server/internal/handler"
	"pgfeaturediff-server/internal/middleware"
	"pgfeaturediff-server/internal/repository"
	"pgfeaturediff-server/internal/service"
	"pgfeaturediff-server/internal/websocket"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The document is fetched exactly once; a failed load is terminal.
	var documentRepo repository.DocumentRepository
	if cfg.Dataset.URL != "" {
		log.Printf("Loading feature matrix from %s", cfg.Dataset.URL)
		documentRepo = repository.NewHTTPDocumentRepository(cfg.Dataset.URL)
	} else {
		log.Printf("Loading feature matrix from %s", cfg.Dataset.Path)
		documentRepo = repository.NewFileDocumentRepository(cfg.Dataset.Path)
	}

	doc, err := documentRepo.Load()
	if err != nil {
		log.Fatalf("Failed to load feature document: %v", err)
	}

	matrixService, err := service.NewMatrixService(doc)
	if err != nil {
		log.Fatalf("Failed to validate feature document: %v", err)
	}
	matrixService.SetDefaultRange(cfg.Matrix.DefaultFrom, cfg.Matrix.DefaultTo)

	defaultFrom, defaultTo := matrixService.DefaultRange()
	log.Printf("Loaded %d features across %d versions (updated %s, default range %s..%s)",
		len(doc.Features), len(doc.Versions), doc.LastUpdated, defaultFrom, defaultTo)

	wsManager := websocket.NewManager(
		cfg.WebSocket.MaxClients,
		cfg.WebSocket.WriteWait,
		cfg.WebSocket.PongWait,
		cfg.WebSocket.PingPeriod,
	)
	wsManager.SetMessageHandler(handler.NewCompareMessageHandler(matrixService))
	go wsManager.Run()

	matrixHandler := handler.NewMatrixHandler(matrixService)
	wsHandler := handler.NewWebSocketHandler(wsManager)

	staticHandler, err := handler.NewStaticHandler(doc)
	if err != nil {
		log.Fatalf("Failed to prepare static assets: %v", err)
	}

	r := mux.NewRouter()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/versions", matrixHandler.Versions).Methods("GET", "OPTIONS")
	api.HandleFunc("/compare", matrixHandler.Compare).Methods("GET", "OPTIONS")
	api.HandleFunc("/categories", matrixHandler.Categories).Methods("GET", "OPTIONS")
	api.HandleFunc("/document", matrixHandler.Document).Methods("GET", "OPTIONS")

	r.HandleFunc("/ws", wsHandler.HandleConnection)

	r.HandleFunc("/feature_matrix.json", staticHandler.Dataset).Methods("GET")
	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/", staticHandler.Index).Methods("GET")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting pgfeaturediff server on %s (env: %s)", addr, cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"pgfeaturediff-server"}`))
}
