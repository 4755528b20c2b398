// Package driving defines interfaces that external actors (the shell UI,
// CLI, MCP server) use to interact with core services, plus the tool
// contract every annotation tool implements. These are the "driving" ports
// in hexagonal architecture terminology - they drive the application.
//
// Implementations live in internal/core/services and internal/tools.
package driving
