// Package driving defines what the CLI, the MCP server and the watcher call
// into: the retrieval facade and the settings service.
//
// Implementations live in internal/core/services.
package driving
