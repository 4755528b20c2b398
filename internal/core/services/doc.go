// Package services implements the core coordination logic of the
// annotation subsystem: the persistence collaborator that canonicalizes
// annotation requests, and the toolbar coordinator that enforces
// single-tool-active semantics. Services depend only on domain types and
// ports; they reach infrastructure exclusively through driven interfaces.
package services
