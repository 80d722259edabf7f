package classify

import (
	"testing"

	"github.com/procurelens/procurelens/internal/model"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		item string
		want model.Category
	}{
		{name: "fresh produce", item: "Fresh Tomatoes", want: model.CategoryFood},
		{name: "dairy", item: "Amul Milk 1L", want: model.CategoryFood},
		{name: "cleaning supplies", item: "Floor Cleaning Chemical", want: model.CategoryHousekeeping},
		{name: "linen", item: "Bath Linen Set", want: model.CategoryHousekeeping},
		{name: "repair work", item: "AC Repair Service", want: model.CategoryMaintenance},
		{name: "electrical", item: "LED Bulb 9W", want: model.CategoryMaintenance},
		{name: "guest amenity", item: "Welcome Kit Deluxe", want: model.CategoryGuest},
		{name: "slippers", item: "Disposable Slippers", want: model.CategoryGuest},
		{name: "signage", item: "Lobby Banner Print", want: model.CategoryMarketing},
		{name: "office supplies", item: "A4 Paper Ream", want: model.CategoryUtilities},
		{name: "no keyword match", item: "Miscellaneous Item 42", want: model.CategoryUtilities},
		{name: "empty string", item: "", want: model.CategoryUtilities},
		{name: "case insensitive", item: "FROZEN CHICKEN", want: model.CategoryFood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.item); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.item, got, tt.want)
			}
		})
	}
}

func TestCategorizeOrderedTieBreak(t *testing.T) {
	// "room service" matches both Housekeeping ("room") and Maintenance
	// ("service"); the earlier table entry wins.
	if got := Categorize("Room Service Tray"); got != model.CategoryHousekeeping {
		t.Errorf("Categorize tie-break = %q, want %q", got, model.CategoryHousekeeping)
	}
}

func TestVelocityFor(t *testing.T) {
	tests := []struct {
		want model.Velocity
		freq int
	}{
		{model.VelocityRare, 1},
		{model.VelocityRare, 2},
		{model.VelocityVery, 3},
		{model.VelocityVery, 5},
		{model.VelocitySlow, 6},
		{model.VelocitySlow, 10},
		{model.VelocityMedium, 11},
		{model.VelocityMedium, 20},
		{model.VelocityFast, 21},
		{model.VelocityFast, 25},
		{model.VelocityFast, 1000},
	}

	for _, tt := range tests {
		if got := VelocityFor(tt.freq); got != tt.want {
			t.Errorf("VelocityFor(%d) = %q, want %q", tt.freq, got, tt.want)
		}
	}
}

func TestVelocityPartition(t *testing.T) {
	// Every positive frequency lands in exactly one of the five buckets.
	seen := make(map[model.Velocity]bool)
	for freq := 1; freq <= 100; freq++ {
		seen[VelocityFor(freq)] = true
	}
	if len(seen) != len(model.Velocities) {
		t.Errorf("frequencies 1..100 covered %d buckets, want %d", len(seen), len(model.Velocities))
	}
}

func TestPurchaseCycle(t *testing.T) {
	tests := []struct {
		want string
		freq int
	}{
		{"Low", 1},
		{"Low", 5},
		{"Medium", 6},
		{"Medium", 10},
		{"High", 11},
		{"High", 50},
	}

	for _, tt := range tests {
		if got := PurchaseCycle(tt.freq); got != tt.want {
			t.Errorf("PurchaseCycle(%d) = %q, want %q", tt.freq, got, tt.want)
		}
	}
}

func TestFrequencyCounter(t *testing.T) {
	counter := NewFrequencyCounter()

	for i := 0; i < 25; i++ {
		counter.Observe("Fresh Tomatoes")
	}
	counter.Observe("Welcome Kit")
	counter.Observe("Welcome Kit")
	counter.Observe("A4 Paper")

	if got := counter.Count("Fresh Tomatoes"); got != 25 {
		t.Errorf("Count(Fresh Tomatoes) = %d, want 25", got)
	}
	if got := counter.Count("Welcome Kit"); got != 2 {
		t.Errorf("Count(Welcome Kit) = %d, want 2", got)
	}
	if got := counter.Count("never seen"); got != 0 {
		t.Errorf("Count(never seen) = %d, want 0", got)
	}

	items := counter.Items()
	want := []string{"Fresh Tomatoes", "Welcome Kit", "A4 Paper"}
	if len(items) != len(want) {
		t.Fatalf("Items() returned %d items, want %d", len(items), len(want))
	}
	for i, item := range want {
		if items[i] != item {
			t.Errorf("Items()[%d] = %q, want %q", i, items[i], item)
		}
	}

	// An item bought 25 times is fast-moving food.
	if got := Categorize("Fresh Tomatoes"); got != model.CategoryFood {
		t.Errorf("Categorize(Fresh Tomatoes) = %q, want %q", got, model.CategoryFood)
	}
	if got := VelocityFor(counter.Count("Fresh Tomatoes")); got != model.VelocityFast {
		t.Errorf("VelocityFor(25) = %q, want %q", got, model.VelocityFast)
	}
}
