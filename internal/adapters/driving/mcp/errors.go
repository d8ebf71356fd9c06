// Package mcp provides an MCP (Model Context Protocol) server adapter for petmatch.
// It lets AI assistants find adoptable animals for an adopter's preferences.
package mcp

import "errors"

// ErrMissingMatchService is returned when the match service is not provided.
var ErrMissingMatchService = errors.New("mcp: match service is required")
