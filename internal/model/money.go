package model

import (
	"fmt"
	"math"
)

// Display amounts use Indian currency units: lakhs for big figures and
// thousands for waste lines. These strings are part of the wire format.

// RupeesLakh formats an amount as lakhs with one decimal, e.g. "₹1.2L".
func RupeesLakh(amount float64) string {
	return fmt.Sprintf("₹%.1fL", amount/100000)
}

// RupeesK formats an amount as rounded thousands, e.g. "₹42k".
func RupeesK(amount float64) string {
	return fmt.Sprintf("₹%dk", int(math.Round(amount/1000)))
}
