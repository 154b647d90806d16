package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/rl1809/rocketshoes-cart/internal/adapter/handler"
	"github.com/rl1809/rocketshoes-cart/internal/adapter/handler/cartrpc"
	"github.com/rl1809/rocketshoes-cart/internal/app"
	"github.com/rl1809/rocketshoes-cart/internal/config"
)

func main() {
	configPath := flag.String("config", os.Getenv("ROCKETSHOES_CONFIG"), "path to a YAML config file")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Build the cart store and its adapters
	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to start cart: %v", err)
	}

	// Initialize gRPC server
	grpcServer := grpc.NewServer()
	cartrpc.RegisterCartServiceServer(grpcServer, handler.NewGRPCHandler(application.Store))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server error: %v", err)
		}
	}()

	// Initialize HTTP server
	mux := http.NewServeMux()
	handler.NewHTTPHandler(application.Store).Register(mux)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	// Watch streams only end with their clients
	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		grpcServer.Stop()
	}
	log.Println("gRPC server stopped")

	if err := application.Close(); err != nil {
		log.Printf("failed to close adapters: %v", err)
	}
	log.Println("connections closed")
}
