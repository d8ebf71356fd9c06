package mcp

import (
	"github.com/custodia-labs/petmatch/internal/core/ports/driving"
)

// defaultNeighbors is used when neither the tool call nor Ports sets k.
const defaultNeighbors = 5

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Match ranks and looks up animals.
	Match driving.MatchService

	// DefaultK is the number of matches returned when a call omits k.
	DefaultK int
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Match == nil {
		return ErrMissingMatchService
	}
	return nil
}

func (p *Ports) defaultK() int {
	if p.DefaultK > 0 {
		return p.DefaultK
	}
	return defaultNeighbors
}
