package session

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowboard/pkg/command"
	"github.com/matzehuels/flowboard/pkg/config"
	"github.com/matzehuels/flowboard/pkg/flow"
	"github.com/matzehuels/flowboard/pkg/history"
	"github.com/matzehuels/flowboard/pkg/layout"
	"github.com/matzehuels/flowboard/pkg/reconcile"
)

// Options configures a [Session].
type Options struct {
	Command        command.Config
	HistoryDepth   int     // Undo steps kept; <= 0 uses history.DefaultDepth
	GuideTolerance float64 // Snap distance for drag guides
	Grid           layout.Grid
	OrphanPolicy   reconcile.OrphanPolicy
	DefaultShape   flow.ShapeKind
	Logger         *log.Logger // nil uses log.Default()
}

// DefaultOptions returns the built-in editor settings.
func DefaultOptions() Options {
	return Options{
		Command:        command.DefaultConfig(),
		HistoryDepth:   history.DefaultDepth,
		GuideTolerance: layout.DefaultTolerance,
		Grid:           layout.DefaultGrid(),
		OrphanPolicy:   reconcile.OrphanDelete,
	}
}

// OptionsFromConfig maps the editor, layout and sync sections of a
// configuration file onto session options.
func OptionsFromConfig(cfg config.Config, logger *log.Logger) Options {
	opts := DefaultOptions()
	opts.Command.Grid = cfg.Editor.Grid
	opts.Command.PasteOffset = flow.Point{X: cfg.Editor.PasteOffset, Y: cfg.Editor.PasteOffset}
	opts.Command.GroupPadding = cfg.Editor.GroupPadding
	opts.HistoryDepth = cfg.Editor.HistoryDepth
	opts.GuideTolerance = cfg.Editor.GuideTolerance
	opts.Grid = layout.Grid{
		Columns:  cfg.Layout.Columns,
		SpacingX: cfg.Layout.SpacingX,
		SpacingY: cfg.Layout.SpacingY,
		OriginX:  cfg.Layout.OriginX,
		OriginY:  cfg.Layout.OriginY,
	}
	opts.OrphanPolicy = reconcile.OrphanPolicy(cfg.Sync.OrphanPolicy)
	opts.DefaultShape = flow.ShapeKind(cfg.Sync.DefaultShape)
	opts.Logger = logger
	return opts
}

func (o Options) syncOptions() reconcile.Options {
	return reconcile.Options{
		Grid:   o.Grid,
		Policy: o.OrphanPolicy,
		Shape:  o.DefaultShape,
		NewID:  func() string { return o.Command.ID("node") },
	}
}
