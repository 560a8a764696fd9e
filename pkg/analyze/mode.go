package analyze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/syntree/pkg/syntax"
	"github.com/yaklabco/syntree/pkg/walk"
)

// Mode selects what AnalyzeFile gathers from each tree.
type Mode string

const (
	// ModeDump records the kind trace of a depth-first walk.
	ModeDump Mode = "dump"
	// ModeUsings collects using directives outside the excluded root.
	ModeUsings Mode = "usings"
	// ModeCollect collects usings, variable declarations and invocations.
	ModeCollect Mode = "collect"
	// ModeQuery lists the nodes of the requested kinds.
	ModeQuery Mode = "query"
	// ModeDescribe produces the structural walkthrough of the program.
	ModeDescribe Mode = "describe"
)

// ErrNoKinds is returned when a query names no kinds.
var ErrNoKinds = errors.New("query needs at least one kind")

// IsValid returns true if m is a known mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeDump, ModeUsings, ModeCollect, ModeQuery, ModeDescribe:
		return true
	default:
		return false
	}
}

// Options controls a single analysis.
type Options struct {
	// Mode selects the facts to gather. Empty means ModeCollect.
	Mode Mode

	// Depth is the walk depth for ModeDump. DepthNodes traces nodes only;
	// deeper levels add tokens.
	Depth walk.Depth

	// Kinds are the node kinds listed by ModeQuery.
	Kinds []syntax.Kind

	// ExcludedRoot replaces the namespace root hidden from using
	// collections. Empty keeps the default "System".
	ExcludedRoot string

	// AllUsings lists every using directive, ignoring ExcludedRoot.
	AllUsings bool

	// SkipGenerated makes ProcessFile refuse vendored and generated files.
	SkipGenerated bool
}

// DefaultOptions returns options for ModeCollect.
func DefaultOptions() Options {
	return Options{Mode: ModeCollect, Depth: walk.DepthNodes}
}

func (o Options) mode() Mode {
	if o.Mode == "" {
		return ModeCollect
	}
	return o.Mode
}

// Validate reports option combinations that cannot run.
func (o Options) Validate() error {
	mode := o.mode()
	if !mode.IsValid() {
		return fmt.Errorf("unknown mode %q", string(o.Mode))
	}
	if mode == ModeQuery && len(o.Kinds) == 0 {
		return ErrNoKinds
	}
	return nil
}

// ParseKinds resolves comma or space separated kind names.
func ParseKinds(names ...string) ([]syntax.Kind, error) {
	var kinds []syntax.Kind
	for _, name := range names {
		for _, field := range strings.FieldsFunc(name, func(r rune) bool { return r == ',' || r == ' ' }) {
			kind, ok := syntax.ParseKind(field)
			if !ok {
				return nil, fmt.Errorf("unknown syntax kind %q", field)
			}
			kinds = append(kinds, kind)
		}
	}
	if len(kinds) == 0 {
		return nil, ErrNoKinds
	}
	return kinds, nil
}
