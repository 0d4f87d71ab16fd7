// Package tcp implements TCP socket-based transport for nKV. It provides concrete
// implementations of the base package's connector interfaces.
//
// Key Components:
//
//   - clientConnector: TCP-specific implementation of base.IClientConnector
//
//   - serverConnector: TCP-specific implementation of base.IServerConnector
//
// Both connectors apply the SocketConf and TCPConf settings (no delay, keep alive,
// linger, buffer sizes) to every connection.
package tcp
