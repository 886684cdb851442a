// Package dashboard projects a filtered selection into headline
// metrics, chart configs and the detail table.
package dashboard

import (
	"github.com/cobiadigital/school-pay-visualization/internal/domain/dataset"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/types"
)

// Build filters ds by sel and projects the result. An empty selection
// yields a well-formed view with "No data" metrics and empty series.
func Build(ds *dataset.Dataset, sel types.Selection, opts ...Option) View {
	cfg := applyOptions(opts)
	sel = sel.Normalize()

	records := ds.Filter(sel)
	summaries := dataset.Aggregate(records)

	return View{
		Selection:         sel,
		Metrics:           Headlines(records),
		Charts:            Charts(summaries, cfg.progressionCap),
		Table:             Table(records, cfg.tableRowLimit),
		Records:           len(records),
		Empty:             len(records) == 0,
		DetailedAvailable: ds.DetailedAvailable(),
	}
}
