package report

import (
	"database/sql"
	"time"

	"github.com/hpungsan/texpulse/internal/config"
	"github.com/hpungsan/texpulse/internal/latex"
	"github.com/hpungsan/texpulse/internal/snapshot"
)

// BackupInput contains parameters for the Backup operation.
type BackupInput struct {
	Now time.Time // zero means time.Now()
}

// BackupOutput contains the result of the Backup operation.
type BackupOutput struct {
	Day     string `json:"day"`
	Created bool   `json:"created"`
}

// Backup stores today's baseline snapshot unless one already exists. Only
// the first invocation of a day writes; later ones are no-ops, so the
// baseline always reflects the project state at the start of the day.
func Backup(database *sql.DB, cfg *config.Config, input BackupInput) (*BackupOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	day := snapshot.Day(now)

	exists, err := snapshot.Exists(database, day)
	if err != nil {
		return nil, err
	}
	if exists {
		return &BackupOutput{Day: day, Created: false}, nil
	}

	payload, err := assemblePayload(cfg)
	if err != nil {
		return nil, err
	}
	if err := snapshot.Store(database, day, payload); err != nil {
		return nil, err
	}
	return &BackupOutput{Day: day, Created: true}, nil
}

// assemblePayload gathers everything a baseline captures: the outline tree
// with word statistics plus the raw float and reference inventories.
func assemblePayload(cfg *config.Config) (*snapshot.Payload, error) {
	art := cfg.Artifacts()

	tree, _, err := buildTree(cfg)
	if err != nil {
		return nil, err
	}
	figures, err := latex.ParseFloats(art.LOF, latex.FloatFigure)
	if err != nil {
		return nil, err
	}
	tables, err := latex.ParseFloats(art.LOT, latex.FloatTable)
	if err != nil {
		return nil, err
	}
	declared, cited, err := referenceKeys(cfg)
	if err != nil {
		return nil, err
	}
	used, err := usedFigureKeys(cfg)
	if err != nil {
		return nil, err
	}
	avail, err := availFigureKeys(cfg)
	if err != nil {
		return nil, err
	}

	return &snapshot.Payload{
		Outline:      tree.Nodes(),
		Figures:      figures,
		Tables:       tables,
		References:   declared,
		Citations:    cited,
		UsedFigures:  used,
		AvailFigures: avail,
	}, nil
}
