package walk

import (
	"fmt"
	"strings"
)

// Depth controls which elements the default visit reaches.
type Depth uint8

// Depths, from shallow to deep.
const (
	DepthNodes Depth = iota
	DepthTokens
	DepthTrivia
)

// String returns the depth name as used in configuration.
func (d Depth) String() string {
	switch d {
	case DepthNodes:
		return "nodes"
	case DepthTokens:
		return "tokens"
	case DepthTrivia:
		return "trivia"
	default:
		return fmt.Sprintf("Depth(%d)", uint8(d))
	}
}

// ParseDepth parses "nodes", "tokens" or "trivia".
func ParseDepth(s string) (Depth, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nodes":
		return DepthNodes, nil
	case "tokens", "":
		return DepthTokens, nil
	case "trivia":
		return DepthTrivia, nil
	default:
		return DepthTokens, fmt.Errorf("invalid walk depth %q: must be one of nodes, tokens, trivia", s)
	}
}
