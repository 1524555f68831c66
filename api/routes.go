package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/banca-client/internal/handlers/v1/status"
	"github.com/carson-networks/banca-client/internal/logging"
)

// Registrar is implemented by every v1 handler.
type Registrar interface {
	Register(api huma.API)
}

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Backend  string
	Handlers []Registrar
}

// Router builds the full handler tree: the plain status endpoint plus the
// huma API, whose operations run behind the request logging middleware.
func (r *Rest) Router() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Backend)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Banca Client API", "1.0.0"))
	api.UseMiddleware(r.withLogData)
	for _, h := range r.Handlers {
		h.Register(api)
	}

	return mux
}

// withLogData attaches a fresh LogData with a request id to every operation
// and logs it once the handler is done.
func (r *Rest) withLogData(ctx huma.Context, next func(huma.Context)) {
	logData := logging.NewLogData(r.Logger)
	if id, err := uuid.NewV4(); err == nil {
		logData.AddData("requestID", id.String())
		ctx.SetHeader("X-Request-Id", id.String())
	}
	logData.AddData("method", ctx.Method())
	logData.AddData("path", ctx.URL().Path)

	name := "API"
	if op := ctx.Operation(); op != nil && op.OperationID != "" {
		name = op.OperationID
	}

	endTimer := logData.AddTiming("duration")
	next(huma.WithContext(ctx, logging.WithLogData(ctx.Context(), logData)))
	endTimer()

	logData.AddData("status", ctx.Status())
	if ctx.Status() >= http.StatusInternalServerError {
		logData.Log().Errorf("Handler.%v.Error", name)
		return
	}
	logData.Log().Infof("Handler.%v.Complete", name)
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (r *Rest) Serve(ctx context.Context) {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Router(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Warn("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
