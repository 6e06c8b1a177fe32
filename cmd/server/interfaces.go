package main

// SequenceGenerator issues monotonic sequence numbers for broadcast
// envelopes.
type SequenceGenerator interface {
	Next() uint64
	Current() uint64
}

// Logger matches the logging dependency used across the internal packages.
type Logger interface {
	Printf(format string, v ...any)
}
