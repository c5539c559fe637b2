package event

// Package event defines the typed events workers emit while running. Events
// travel over a single channel constructed by the coordinator and injected
// into each worker at spawn time; there is no process-wide emitter.
