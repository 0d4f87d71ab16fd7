package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/ValentinKolb/nKV/lib/store"
	"github.com/ValentinKolb/nKV/rpc/common"
	"github.com/ValentinKolb/nKV/rpc/serializer"
	"github.com/ValentinKolb/nKV/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var Logger = logger.GetLogger("rpc")

// shutdownGrace is added to the connection timeout when waiting for in-flight requests
const shutdownGrace = time.Second

// NewRPCServer creates a new RPC server
// It takes a config, transport, serializer and the store that executes the commands
//
// Usage:
//
//	s := server.NewRPCServer(
//		config,
//		tcp.NewTCPServerTransport(),
//		serializer.NewLineSerializer(),
//		lstore.NewLocalStore(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
	store store.IStore,
) *RPCServer {
	return &RPCServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		store:      store,
		metrics:    newServerMetrics(transport.ActiveConnections),
	}
}

// RPCServer decodes requests, executes them against the store and encodes the results
type RPCServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	store      store.IStore
	metrics    *serverMetrics
}

// Serve initializes the loggers and runs the server until SIGINT or SIGTERM is received
func (s *RPCServer) Serve() error {
	if err := common.InitLoggers(s.config.LogLevel); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.Run(ctx)
}

// Run listens on the configured endpoint until ctx is done
func (s *RPCServer) Run(ctx context.Context) error {
	return s.run(ctx, func() error {
		return s.transport.Listen(s.config)
	})
}

// RunListener serves an existing listener until ctx is done
func (s *RPCServer) RunListener(ctx context.Context, listener net.Listener) error {
	return s.run(ctx, func() error {
		return s.transport.Serve(listener, s.config)
	})
}

func (s *RPCServer) run(ctx context.Context, listen func() error) error {
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	Logger.Infof("Starting nKV server with %s serializer", s.serializer.GetName())
	Logger.Infof("%s", s.config.String())

	// Configure the transport layer
	s.transport.RegisterHandler(s.handle, s.reject)

	// Start the metrics endpoint
	var metricsServer *http.Server
	if s.config.MetricsEndpoint != "" {
		metricsServer = s.startMetricsServer()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen()
	}()

	var err error
	select {
	case err = <-errCh:
		// the transport stopped on its own (e.g. the listener could not be created)
	case <-ctx.Done():
		Logger.Infof("Shutting down")
		timeout := time.Duration(s.config.TimeoutSecond)*time.Second + shutdownGrace
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		if shutdownErr := s.transport.Shutdown(shutdownCtx); shutdownErr != nil {
			Logger.Warningf("Shutdown did not complete: %v", shutdownErr)
		}
		cancel()
		err = <-errCh
	}

	if metricsServer != nil {
		_ = metricsServer.Close()
	}

	for _, line := range s.metrics.summary() {
		Logger.Infof("%s", line)
	}
	return err
}

// --------------------------------------------------------------------------
// Request Handling
// --------------------------------------------------------------------------

// handle processes a single request (transport.ServerHandleFunc)
func (s *RPCServer) handle(req []byte) []byte {
	start := time.Now()

	cmd, err := s.serializer.DeserializeCommand(req)
	if err != nil {
		s.metrics.invalid()
		Logger.Debugf("Invalid request %q: %v", req, err)
		return s.encode(store.NewErrorResult(err))
	}

	res := store.Dispatch(s.store, cmd)
	s.metrics.observe(cmd.Kind.String(), res.Ok, time.Since(start))
	Logger.Debugf("%s key=%q ok=%t took %s", cmd.Name, cmd.Key, res.Ok, time.Since(start))

	return s.encode(res)
}

// reject answers a request that could not be read (transport.ServerRejectFunc)
func (s *RPCServer) reject(_ error) []byte {
	s.metrics.rejected()
	return s.encode(store.NewErrorResult(
		store.Errorf(store.RetCMalformedMessage, "ERROR: Message exceeds %d bytes", s.config.Transport.MaxMessageSize),
	))
}

// encode serializes a result. If that fails, the failure itself is sent instead.
func (s *RPCServer) encode(res store.Result) []byte {
	data, err := s.serializer.SerializeResult(res)
	if err == nil {
		return data
	}

	Logger.Errorf("Failed to serialize result: %v", err)
	data, err = s.serializer.SerializeResult(store.NewErrorResult(fmt.Errorf("failed to serialize response: %w", err)))
	if err != nil {
		return nil
	}
	return data
}

// --------------------------------------------------------------------------
// Metrics Endpoint
// --------------------------------------------------------------------------

// metricsHandler serves the command metrics
func (s *RPCServer) metricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		s.metrics.writePrometheus(w)
	})
	return mux
}

func (s *RPCServer) startMetricsServer() *http.Server {
	srv := &http.Server{
		Addr:              s.config.MetricsEndpoint,
		Handler:           s.metricsHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		Logger.Infof("Serving metrics on http://%s/metrics", s.config.MetricsEndpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Errorf("Metrics server failed: %v", err)
		}
	}()
	return srv
}
