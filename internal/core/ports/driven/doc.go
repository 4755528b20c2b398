// Package driven defines the interfaces that core calls OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services and tools depend on these interfaces, and infrastructure
// adapters implement them.
//
// # Required Interfaces
//
//   - Bus: synchronous event dispatch between components
//   - AnnotationStore: annotation persistence
//   - RenderSurface / Node: the virtualized page surface abstraction
//   - Logger: diagnostic logging handed to tools
//
// # Optional Interfaces
//
// These can be nil - the owning tool degrades to an inert button:
//
//   - ImageStore: screenshot image persistence
//   - Prompter: the description dialog for screenshot captures
//
// # Import Rules
//
//   - Can Import: domain package and the standard library only
//   - Cannot Import: any adapter, tool, or surface package
package driven
