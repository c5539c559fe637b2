package coordinator

// Package coordinator owns worker lifecycles and all queue and history
// mutation. It enforces single-flight search, a single in-flight download
// batch, and bounded cooperative shutdown, routing every worker event to
// queue updates, UI-facing callbacks, and the history store.
