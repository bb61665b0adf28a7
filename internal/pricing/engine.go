// Package pricing turns a stand option schema plus an exhibitor's raw
// selections into a total price and an itemized breakdown. Computation is
// synchronous and side-effect-free; the same inputs always produce the
// same output.
package pricing

import (
	"github.com/salasintercc/expo-admin-api/internal/domain"
)

// Result is the output of one pricing pass. Breakdown is keyed by the
// item's human-readable label so it stays meaningful when re-rendered
// without the schema in hand. The sum of Breakdown always equals Total.
type Result struct {
	Total     float64
	Breakdown map[string]float64
	Warnings  []domain.SchemaResolutionWarning
}

// Compute prices the given responses against a schema snapshot.
//
// Text and upload items contribute nothing. Select/image items add the
// price of every resolved option id. Ids that no longer resolve (the
// option was edited or removed after the answer was stored) contribute
// zero and are reported as warnings rather than errors.
func Compute(schema domain.StandOption, data domain.ConfigData) Result {
	result := Result{
		Breakdown: map[string]float64{},
	}

	for _, item := range schema.Items {
		resp, ok := data[item.ID]
		if !ok {
			continue
		}

		if !item.Type.IsChoice() {
			continue
		}

		subtotal := 0.0
		for _, id := range resp.SelectionIDs() {
			opt, found := item.FindOption(id)
			if !found {
				result.Warnings = append(result.Warnings, domain.SchemaResolutionWarning{
					StandOptionID: schema.ID,
					ItemID:        item.ID,
					OptionID:      id,
				})
				continue
			}

			subtotal += opt.Price
		}

		if subtotal > 0 {
			result.Breakdown[item.Label] += subtotal
			result.Total += subtotal
		}
	}

	return result
}
