package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadscout/leadgen-cli/internal/store"
	"github.com/leadscout/leadgen-cli/pkg/sheets"
)

// Sync flattens every stored profile into spreadsheet rows and upserts
// them into the configured sheet. Returns the number of rows sent.
func (p *Pipeline) Sync(ctx context.Context) (int, error) {
	records, err := p.store.ListProfiles(ctx, store.ProfileFilter{})
	if err != nil {
		return 0, eris.Wrap(err, "pipeline: list profiles")
	}

	log := zap.L()
	rows := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		flat, err := sheets.FlattenRecord(rec)
		if err != nil {
			log.Warn("pipeline: flatten failed, skipping record",
				zap.String("company", rec.Meta.CompanyName), zap.Error(err))
			continue
		}
		rows = append(rows, flat)
	}

	if len(rows) == 0 {
		return 0, nil
	}
	if err := p.sheet.Upsert(ctx, rows); err != nil {
		return 0, eris.Wrap(err, "pipeline: sheet upsert")
	}

	log.Info("pipeline: sheet sync complete", zap.Int("rows", len(rows)))
	return len(rows), nil
}
