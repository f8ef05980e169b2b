// Package log defines the structured logging interface used across settler.
//
// Adapters (such as the zap package) implement Logger so the engine and the
// run loop stay independent of the logging backend.
package log
