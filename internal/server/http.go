package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPService serves an http.Handler as a lifecycle Service.
type HTTPService struct {
	srv             *http.Server
	listener        net.Listener
	shutdownTimeout time.Duration
	logger          *zap.Logger
}

// HTTPOptions configures an HTTPService.
type HTTPOptions struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// NewHTTPService wraps handler in an http.Server.
//
// Precondition: handler and logger must be non-nil.
func NewHTTPService(handler http.Handler, opts HTTPOptions, logger *zap.Logger) *HTTPService {
	return &HTTPService{
		srv: &http.Server{
			Addr:         opts.Addr,
			Handler:      handler,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
		},
		shutdownTimeout: opts.ShutdownTimeout,
		logger:          logger,
	}
}

// Listen binds the listening socket ahead of Start so that bind failures
// surface before the lifecycle begins.
//
// Postcondition: Addr reports the bound address on success.
func (h *HTTPService) Listen() error {
	ln, err := net.Listen("tcp", h.srv.Addr)
	if err != nil {
		return err
	}
	h.listener = ln
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (h *HTTPService) Addr() string {
	if h.listener != nil {
		return h.listener.Addr().String()
	}
	return h.srv.Addr
}

// Start serves until Stop is called.
//
// Postcondition: returns nil after a graceful Stop.
func (h *HTTPService) Start() error {
	if h.listener == nil {
		if err := h.Listen(); err != nil {
			return err
		}
	}
	h.logger.Info("http listening", zap.String("addr", h.Addr()))
	if err := h.srv.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests for up to the shutdown timeout, then closes.
func (h *HTTPService) Stop() {
	timeout := h.shutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := h.srv.Shutdown(ctx); err != nil {
		h.logger.Warn("http shutdown", zap.Error(err))
		_ = h.srv.Close()
	}
}
