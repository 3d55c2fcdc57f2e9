// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// HybridSearchEngine owns the in-memory index. RetrievalService is the
// facade that keeps the corpus in a DocumentStore and rebuilds the index
// whenever the corpus changes.
package services
