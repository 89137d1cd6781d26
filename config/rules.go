package config

import (
	"fmt"

	"gridsnap/grid"

	"github.com/gobwas/glob"
)

// GridRule assigns a grid to every monitor whose name matches a glob
// pattern, e.g. "DELL*" or "*DISPLAY2". Like per-ID overrides, a rule's
// shape must fit the monitor it matches.
type GridRule struct {
	Monitor string     `json:"monitor"`
	Grid    grid.Shape `json:"grid"`
}

func (r GridRule) compile() (glob.Glob, error) {
	g, err := glob.Compile(r.Monitor)
	if err != nil {
		return nil, fmt.Errorf("grid rule %q: %w", r.Monitor, err)
	}
	return g, nil
}

// matchRule returns the first rule whose pattern matches name.
func matchRule(rules []GridRule, name string) (GridRule, bool, error) {
	for _, r := range rules {
		g, err := r.compile()
		if err != nil {
			return GridRule{}, false, err
		}
		if g.Match(name) {
			return r, true, nil
		}
	}
	return GridRule{}, false, nil
}
