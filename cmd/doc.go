// Package cmd implements the command-line interface of nKV. It provides
// commands for running the server and for talking to it as a client.
//
// The package is organized into several subpackages:
//
//   - kv: Client commands, one per command kind (put, get, incr, stats, ...) plus raw and perf
//   - serve: Starts and configures the nKV server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Flags can also be set as environment variables (NKV_<FLAG>, dashes replaced by
// underscores) or in a .env / .env.local file in the working directory.
//
// See nkv -help for a list of all commands.
package cmd
