// Package server implements the nKV server. It connects a transport, a serializer
// and a store: every request read by the transport is decoded into a command,
// dispatched against the store and the result is encoded as the reply.
//
// Failure Handling:
//
//	Every failure (undecodable requests, unknown commands, failed commands,
//	oversize requests) is turned into a failed reply for that client. Nothing
//	a client sends stops the server or affects other connections.
//
// Metrics:
//
//	Command counters and latency histograms are kept in a VictoriaMetrics set and
//	served in the Prometheus text format on /metrics if a metrics endpoint is
//	configured. Per-kind go-metrics timers are summarized in the log on shutdown.
//
// Usage Example:
//
//	config := common.DefaultServerConfig()
//	s := server.NewRPCServer(
//	  config,
//	  tcp.NewTCPServerTransport(),
//	  serializer.NewLineSerializer(),
//	  lstore.NewLocalStore(),
//	)
//	if err := s.Serve(); err != nil {
//	  log.Fatal(err)
//	}
package server
