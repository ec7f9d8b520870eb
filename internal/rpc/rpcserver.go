package rpc

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/6529-Collections/nftactions/internal/rpc/handlers"
	"go.uber.org/zap"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

type Dependencies struct {
	Assembler      handlers.ActionAssembler
	Platforms      handlers.PlatformLister
	Chains         handlers.ChainLister
	DB             *sql.DB
	ResolveTimeout time.Duration
}

func NewHandler(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	actionsGet := func(r *http.Request) (any, error) {
		return handlers.ActionsGetHandler(r, deps.DB)
	}

	handlers.SetupHandlers(mux, handlers.MethodHandlers{
		handlers.CreateApiPath(handlers.ApiV1, "status"): {
			handlers.HTTP_GET: func(r *http.Request) (any, error) {
				return handlers.StatusGetHandler(r, deps.Chains)
			},
		},
		handlers.CreateApiPath(handlers.ApiV1, "platforms"): {
			handlers.HTTP_GET: func(r *http.Request) (any, error) {
				return handlers.PlatformsGetHandler(r, deps.Platforms)
			},
		},
		handlers.CreateApiPath(handlers.ApiV1, "actions"): {
			handlers.HTTP_GET: actionsGet,
			handlers.HTTP_POST: func(r *http.Request) (any, error) {
				return handlers.ActionsPostHandler(r, deps.Assembler, deps.DB, deps.ResolveTimeout)
			},
		},
		handlers.CreateApiPath(handlers.ApiV1, "actions/"): {
			handlers.HTTP_GET: actionsGet,
		},
	})

	return loggingMiddleware(mux)
}

func StartRPCServer(port int, deps Dependencies, ctx context.Context) func() {
	zap.L().Info("Starting RPC server on port", zap.Int("port", port))

	addr := fmt.Sprintf(":%d", port)
	server := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil {
			if err == http.ErrServerClosed {
				zap.L().Info("RPC server closed")
			} else {
				zap.L().Fatal("starting RPC server failed", zap.Error(err))
			}
		}
	}()
	closeFunc := func() {
		zap.L().Info("Closing RPC server...")
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("server shutdown failed", zap.Error(err))
		}
	}
	return closeFunc
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{w, http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rw, r)

		zap.L().Info("Request",
			zap.String("ip", r.RemoteAddr),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rw.statusCode),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
