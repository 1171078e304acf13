package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/DRSN-tech/credit-simulator/internal/cfg"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/DRSN-tech/credit-simulator/pkg/logger"
	"github.com/jimlawless/whereami"
)

// Server - HTTP-сервер симулятора. Порт занимается в Listen, чтобы ошибка bind
// всплывала синхронно, а не из горутины Serve.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger

	mu       sync.Mutex
	listener net.Listener
}

func NewServer(handler http.Handler, cfg *cfg.HTTPConfig, logger logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		logger: logger,
	}
}

// Listen занимает порт. Повторный вызов ничего не делает.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	s.listener = ln

	return nil
}

// Addr - фактический адрес после Listen (нужен при порте 0).
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return s.httpServer.Addr
	}
	return s.listener.Addr().String()
}

// Serve блокируется до Stop. Штатная остановка ошибкой не считается.
func (s *Server) Serve() error {
	if err := s.Listen(); err != nil {
		return err
	}

	s.logger.Infof("HTTP server listening on %s", s.Addr())
	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Stop дожидается завершения активных запросов в пределах ctx.
// Если Serve так и не запустился, порт освобождается здесь.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Infof("HTTP server stopping")

	err := s.httpServer.Shutdown(ctx)

	s.mu.Lock()
	if s.listener != nil {
		// после Shutdown listener уже закрыт, повторное закрытие вернёт net.ErrClosed
		if closeErr := s.listener.Close(); closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
			err = errors.Join(err, closeErr)
		}
	}
	s.mu.Unlock()

	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}
