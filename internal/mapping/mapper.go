package mapping

import (
	"sort"
	"strings"

	"github.com/procurelens/procurelens/internal/model"
)

// AcceptThreshold is the minimum confidence for a header to count as mapped.
const AcceptThreshold = 0.5

// wellMappedThreshold is the confidence above which a column counts toward
// the standard-UI decision.
const wellMappedThreshold = 0.7

// MapColumns maps every header to its best-matching standard field. Headers
// with no plausible match map to Unknown with confidence 0; the function
// never fails. Running it twice on the same headers yields identical output.
func MapColumns(headers []string) []model.ColumnMapping {
	mappings := make([]model.ColumnMapping, 0, len(headers))

	for _, original := range headers {
		normalized := strings.ToLower(strings.TrimSpace(original))

		best := model.ColumnMapping{
			OriginalName: original,
			StandardName: model.StandardUnknown,
			DataType:     "string",
		}

		for _, field := range StandardFields {
			for _, variation := range field.Variations {
				confidence := matchConfidence(normalized, variation)
				if confidence > AcceptThreshold && confidence > best.Confidence {
					best.StandardName = field.Name
					best.Confidence = confidence
					best.DataType = field.DataType
					best.Required = field.Required
				}
			}
		}

		mappings = append(mappings, best)
	}

	return mappings
}

// matchConfidence scores one header against one known variation:
// exact equality 1.0, substring containment either direction 0.8, otherwise
// the ratio of fuzzily-shared tokens to the larger token count.
func matchConfidence(header, variation string) float64 {
	if header == variation {
		return 1.0
	}
	if header == "" || variation == "" {
		return 0
	}
	if strings.Contains(header, variation) || strings.Contains(variation, header) {
		return 0.8
	}

	headerWords := splitWords(header)
	variationWords := splitWords(variation)

	matching := 0
	for _, hw := range headerWords {
		for _, vw := range variationWords {
			if strings.Contains(hw, vw) || strings.Contains(vw, hw) {
				matching++
				break
			}
		}
	}

	longest := len(headerWords)
	if len(variationWords) > longest {
		longest = len(variationWords)
	}
	if longest == 0 {
		return 0
	}

	return float64(matching) / float64(longest)
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
}

// FindMissing lists standard fields no header resolved to, ranked by how
// badly their absence hurts the analysis.
func FindMissing(mappings []model.ColumnMapping) []model.MissingColumn {
	mapped := mappedNames(mappings)

	var missing []model.MissingColumn
	for _, field := range StandardFields {
		if mapped[field.Name] {
			continue
		}

		importance := model.ImportanceLow
		switch {
		case field.Required && isCritical(field.Name):
			importance = model.ImportanceCritical
		case field.Required:
			importance = model.ImportanceHigh
		case field.Name == FieldStatus || field.Name == FieldCategory:
			importance = model.ImportanceMedium
		}

		missing = append(missing, model.MissingColumn{
			StandardName: field.Name,
			Importance:   importance,
			Description:  field.Description,
			Required:     field.Required,
		})
	}

	sort.SliceStable(missing, func(i, j int) bool {
		return missing[i].Importance.Rank() < missing[j].Importance.Rank()
	})

	return missing
}

// Sufficiency computes the ternary data-sufficiency judgment. All three
// critical fields are a hard precondition; beyond that, full required
// coverage means COMPLETE and at least 60% means PARTIAL.
func Sufficiency(mappings []model.ColumnMapping) model.DataSufficiency {
	mapped := mappedNames(mappings)

	for _, name := range CriticalFields {
		if !mapped[name] {
			return model.SufficiencyInsufficient
		}
	}

	requiredTotal := 0
	requiredMapped := 0
	for _, field := range StandardFields {
		if !field.Required {
			continue
		}
		requiredTotal++
		if mapped[field.Name] {
			requiredMapped++
		}
	}

	if requiredMapped == requiredTotal {
		return model.SufficiencyComplete
	}
	if float64(requiredMapped)/float64(requiredTotal) >= 0.6 {
		return model.SufficiencyPartial
	}
	return model.SufficiencyInsufficient
}

// UIDecision picks the rendering surface from sufficiency plus how many
// columns mapped with high confidence.
func UIDecision(mappings []model.ColumnMapping, sufficiency model.DataSufficiency) model.UIRendering {
	if len(mappings) == 0 {
		return model.UICustom
	}

	wellMapped := 0
	for _, m := range mappings {
		if m.Confidence > wellMappedThreshold {
			wellMapped++
		}
	}
	share := float64(wellMapped) / float64(len(mappings))

	if sufficiency == model.SufficiencyComplete && share > 0.8 {
		return model.UIStandard
	}
	if sufficiency == model.SufficiencyPartial && share > 0.6 {
		return model.UIStandard
	}
	return model.UICustom
}

func mappedNames(mappings []model.ColumnMapping) map[string]bool {
	mapped := make(map[string]bool)
	for _, m := range mappings {
		if m.Mapped() {
			mapped[m.StandardName] = true
		}
	}
	return mapped
}

func isCritical(name string) bool {
	for _, c := range CriticalFields {
		if c == name {
			return true
		}
	}
	return false
}
