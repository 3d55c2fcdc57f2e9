// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - DocumentStore: Source corpus persistence (memory or SQLite)
//   - ConfigStore: Application configuration
//   - RecordLoader: Reads platform records from files
//   - PostProcessor / PostProcessorPipeline: Chunking and enrichment stages
//
// The search index itself is not a port. It is rebuilt in memory from the
// DocumentStore on every document-set change.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or postprocessor package
package driven
