// Package store defines the data model and the command semantics of the nKV
// key-value store. It contains everything a store engine and its callers share,
// independent of how commands reach the store (wire protocol, CLI, tests).
//
// The package focuses on:
//   - A closed set of value types (Int, Text, List) behind the Value interface
//   - A closed set of command kinds (Kind) decoded once and dispatched exhaustively
//   - Per-kind success/error counters (StatsTable)
//   - Unified error reporting with typed return codes
//
// Key Components:
//
//   - IStore Interface: One method per command kind. Implementations apply the
//     mutation or read, update the statistics for the command and return either
//     a payload or a *Error.
//
//   - Dispatch: Routes a decoded Command to the matching IStore method and turns
//     the outcome into a Result (ok flag, display payload and return code).
//     Unknown kinds are answered here without touching the statistics.
//
//   - Error System: Every failure is a *Error carrying a RetCode and the human
//     readable message that is sent back to clients unchanged.
//
// Implementations:
//
//	The local store (lstore) keeps the key space and the statistics in memory and
//	serializes all access through a single mutex.
//	Available in the "github.com/ValentinKolb/nKV/lib/store/lstore" package.
package store
