// Package tcp implements the station-facing protocol endpoint: an accept
// loop, one connection handler goroutine per station, and the request
// router that dispatches decoded actions to the rental service.
package tcp

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/logging"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/metrics"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/service"
)

type Server struct {
	address       string
	svc           *service.RentalService
	logger        logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewServer(address string, logger logging.Logger, svc *service.RentalService, secretKey string, tokenValidity time.Duration) *Server {
	return &Server{
		address:       address,
		logger:        logger.With("module", "tcp_server"),
		svc:           svc,
		jwtSecret:     []byte(secretKey),
		tokenValidity: tokenValidity,
	}
}

// Run accepts station connections until ctx is cancelled. Each accepted
// connection gets its own goroutine; a broken connection never takes the
// server down with it.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping TCP server...")
		_ = listener.Close()
	}()

	s.logger.Info(ctx, "Starting TCP server", "address", s.address)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Warn(ctx, "accept failed", "error", err)
			continue
		}
		go s.handleConn(ctx, conn)
	}
}

// handleConn runs the read-decode-route-encode-write loop for one station.
// Connection state is confined to this goroutine; handlers share only the
// rental service.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	metrics.OpenConnections.Inc()
	defer metrics.OpenConnections.Dec()

	log := s.logger.With("remote_addr", conn.RemoteAddr().String())
	log.Info(ctx, "station connected")

	for {
		var req protocol.Request
		err := protocol.Decode(conn, &req)

		switch {
		case err == nil:
			// fall through to dispatch

		case errors.Is(err, io.EOF):
			log.Info(ctx, "station disconnected")
			return

		case errors.Is(err, protocol.ErrDecode):
			// The frame itself was read completely, so the stream is
			// still aligned; answer and keep the connection.
			log.Warn(ctx, "malformed request payload", "error", err)
			if werr := protocol.Encode(conn, &protocol.Response{
				Status:  protocol.StatusError,
				Message: "Malformed Request",
			}); werr != nil {
				return
			}
			continue

		default:
			// framing/truncation/oversize or transport failure: the
			// stream can no longer be trusted, drop the connection.
			log.Warn(ctx, "closing connection", "error", err)
			return
		}

		resp := s.dispatch(ctx, log, &req)

		if err := protocol.Encode(conn, resp); err != nil {
			log.Warn(ctx, "write failed", "error", err)
			return
		}
	}
}

// dispatch routes one request and records metrics. Handler panics are
// converted into an ERROR envelope so a single bad request cannot kill the
// connection, let alone the process.
func (s *Server) dispatch(ctx context.Context, log logging.Logger, req *protocol.Request) *protocol.Response {
	start := time.Now()
	resp := s.safeRoute(ctx, log, req)
	metrics.ObserveRequest(string(req.Action), string(resp.Status), time.Since(start))
	return resp
}

func (s *Server) safeRoute(ctx context.Context, log logging.Logger, req *protocol.Request) (resp *protocol.Response) {
	defer func() {
		if p := recover(); p != nil {
			log.Error(ctx, "handler panic", "action", req.Action, "panic", p)
			resp = &protocol.Response{Status: protocol.StatusError, Message: "Internal Server Error"}
		}
	}()

	log.Debug(ctx, "request", "action", req.Action)
	return s.route(ctx, req)
}
