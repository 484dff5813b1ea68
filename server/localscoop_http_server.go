package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type LocalScoopHttpServer struct {
	router        *Router
	muxRouter     *mux.Router
	listenAddress string
	logger        *zap.Logger

	// shutdownHooks run after the listener drains, before exit.
	shutdownHooks []func()
}

func NewLocalScoopHttpServer(
	router *Router,
	muxRouter *mux.Router,
	listenAddress string,
	logger *zap.Logger,
	shutdownHooks ...func()) *LocalScoopHttpServer {

	return &LocalScoopHttpServer{
		router:        router,
		muxRouter:     muxRouter,
		listenAddress: listenAddress,
		logger:        logger,
		shutdownHooks: shutdownHooks,
	}
}

// Start runs the server until SIGINT or SIGTERM, then shuts down
// gracefully and runs the shutdown hooks.
func (s *LocalScoopHttpServer) Start() {
	s.router.RegisterRoutes()
	s.muxRouter.Use(RequestLogging(s.logger))

	srv := &http.Server{
		Addr:    s.listenAddress,
		Handler: s.muxRouter,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("starting server", zap.String("address", s.listenAddress))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("forced shutdown", zap.Error(err))
	}

	for _, hook := range s.shutdownHooks {
		hook()
	}
	s.logger.Info("server exited")
}
