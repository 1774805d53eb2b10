package server

import (
	"net/http"
	"time"

	"github.com/brk3/habitdash/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
)

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ctx := logger.ContextWith(r.Context(), "request_id", middleware.GetReqID(r.Context()))

		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.InfoContext(ctx, "Handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
