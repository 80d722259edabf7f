// Package classify assigns line items to spend categories by keyword and to
// purchase-velocity buckets by observed frequency.
package classify

import (
	"strings"

	"github.com/procurelens/procurelens/internal/model"
)

// categoryKeywords is the ordered keyword table. Order is the tie-break when
// an item's text could match several categories: the first match wins.
var categoryKeywords = []struct {
	category model.Category
	keywords []string
}{
	{model.CategoryFood, []string{"veg", "fruit", "meat", "chicken", "milk", "dairy", "bread", "water", "rice", "oil", "sugar", "food", "beverage"}},
	{model.CategoryHousekeeping, []string{"clean", "soap", "detergent", "towel", "linen", "room", "brush", "mop", "chemical", "housekeeping"}},
	{model.CategoryMaintenance, []string{"repair", "paint", "bulb", "electric", "plumb", "tool", "screw", "fix", "ac ", "service", "maintenance"}},
	{model.CategoryGuest, []string{"kit", "slipper", "robe", "welcome", "gift", "amenity", "guest"}},
	{model.CategoryMarketing, []string{"print", "ad", "promo", "sign", "banner", "social", "media", "event", "marketing"}},
	{model.CategoryUtilities, []string{"paper", "pen", "ink", "office", "desk", "chair", "internet", "bill", "power"}},
}

// Categorize returns the category for an item description. Every input
// resolves to exactly one category; items that match no keyword fall back to
// Utilities & Supplies.
func Categorize(item string) model.Category {
	lower := strings.ToLower(item)
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category
			}
		}
	}
	return model.CategoryUtilities
}

// VelocityFor buckets a purchase frequency. Frequencies are at least 1 by
// construction, so the buckets partition all distinct items seen.
func VelocityFor(freq int) model.Velocity {
	switch {
	case freq > 20:
		return model.VelocityFast
	case freq > 10:
		return model.VelocityMedium
	case freq > 5:
		return model.VelocitySlow
	case freq > 2:
		return model.VelocityVery
	default:
		return model.VelocityRare
	}
}

// PurchaseCycle maps a frequency to the display label used in product rollups.
func PurchaseCycle(freq int) string {
	switch {
	case freq > 10:
		return "High"
	case freq > 5:
		return "Medium"
	default:
		return "Low"
	}
}

// FrequencyCounter accumulates per-item purchase counts for one analysis run.
type FrequencyCounter struct {
	counts map[string]int
	order  []string
}

// NewFrequencyCounter returns an empty counter.
func NewFrequencyCounter() *FrequencyCounter {
	return &FrequencyCounter{counts: make(map[string]int)}
}

// Observe records one purchase of item.
func (f *FrequencyCounter) Observe(item string) {
	if _, seen := f.counts[item]; !seen {
		f.order = append(f.order, item)
	}
	f.counts[item]++
}

// Count returns the observed frequency for item, zero if never seen.
func (f *FrequencyCounter) Count(item string) int {
	return f.counts[item]
}

// Items returns all distinct items in first-seen order.
func (f *FrequencyCounter) Items() []string {
	return f.order
}
