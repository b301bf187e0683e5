package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const defaultRequestTimeout = 5 * time.Second

type serverOpts struct {
	requestTimeout time.Duration
}

type ServerOpt func(*serverOpts)

// RequestTimeoutOpt bounds every handler, the client gets 503 after d.
func RequestTimeoutOpt(d time.Duration) ServerOpt {
	return func(o *serverOpts) {
		if d > 0 {
			o.requestTimeout = d
		}
	}
}

type HTTPServer struct {
	httpServer *http.Server
}

func NewHTTPServer(addr string, handler http.Handler, opts ...ServerOpt) HTTPServer {
	options := serverOpts{requestTimeout: defaultRequestTimeout}
	for _, opt := range opts {
		opt(&options)
	}

	s := &http.Server{
		Addr:              addr,
		Handler:           http.TimeoutHandler(handler, options.requestTimeout, "unavailable"),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
	return HTTPServer{s}
}

func (s HTTPServer) Run(stopFn context.CancelFunc) {
	const op = "HTTPServer.Run"
	log := slog.With("op", op)

	defer stopFn()
	log.Info("listening", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		log.Error("unexpected servers shutdown", "err", err)
	}
}

func (s HTTPServer) Close(ctx context.Context) {
	const op = "HTTPServer.Close"
	log := slog.With("op", op)

	log.Info("closing http server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		log.Error("failed to shutdown gracefully", "err", err)
	}
	log.Info("http server is closed")
}
