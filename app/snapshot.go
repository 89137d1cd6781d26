package app

import (
	"fmt"

	"gridsnap/config"
	"gridsnap/monitor"
	"gridsnap/platform"
	"gridsnap/session"
)

// BuildSnapshot enumerates monitors through b and builds the grids cfg asks
// for. Configuration problems are reported here, before any session opens.
func BuildSnapshot(b platform.Backend, cfg *config.Config) (session.Snapshot, error) {
	descs, err := b.Monitors()
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("failed to enumerate monitors: %w", err)
	}
	layout, err := monitor.NewLayout(descs)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("failed to build monitor layout: %w", err)
	}
	if err := cfg.Validate(layout); err != nil {
		return session.Snapshot{}, fmt.Errorf("invalid configuration: %w", err)
	}
	grids, err := cfg.BuildGrids(layout)
	if err != nil {
		return session.Snapshot{}, err
	}
	return session.Snapshot{Layout: layout, Grids: grids, Gaps: cfg.Gaps}, nil
}
