package logger

import "github.com/pagemark-labs/pagemark/internal/core/ports/driven"

// Ensure Port implements the logging collaborator handed to tools.
var _ driven.Logger = Port{}

// Port adapts the package-level logger to the driven.Logger port so tools
// receive logging by reference instead of importing this package.
type Port struct{}

// Debug forwards to the package-level logger.
func (Port) Debug(format string, args ...any) { Debug(format, args...) }

// Info forwards to the package-level logger.
func (Port) Info(format string, args ...any) { Info(format, args...) }

// Warn forwards to the package-level logger.
func (Port) Warn(format string, args ...any) { Warn(format, args...) }

// Error forwards to the package-level logger.
func (Port) Error(format string, args ...any) { Error(format, args...) }
