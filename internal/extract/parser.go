// Package extract turns free-text model responses into figures, style
// analyses, verifications, style guides and training examples.
//
// Every parser degrades instead of failing: missing fields fall back to
// documented defaults and unparseable collections come back empty.
package extract

import "log/slog"

// Parser holds the logger used to report degraded parses. It has no other
// state and is safe for concurrent use.
type Parser struct {
	logger *slog.Logger
}

// New creates a Parser. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger.With("component", "extract")}
}
