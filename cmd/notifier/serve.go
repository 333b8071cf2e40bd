package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/config"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/handler"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/logging"
)

var servePort string

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (default $PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept events over HTTP (POST /events)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		port := servePort
		if port == "" {
			port = a.cfg.Port
		}

		if config.GetEnv("GIN_MODE", "release") == "release" {
			gin.SetMode(gin.ReleaseMode)
		}
		router := handler.NewRouter(a.handler, a.registry, serviceName, version)

		srv := &http.Server{
			Addr:         ":" + port,
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			a.logger.WithFields(logging.Fields{
				"port":    port,
				"service": serviceName,
			}).Info("Starting HTTP server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("http server: %w", err)
		case <-quit:
		}

		a.logger.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		a.logger.Info("Server stopped")
		return nil
	},
}
