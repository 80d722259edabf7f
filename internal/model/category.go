// Package model defines the core domain models used throughout the application.
package model

// Category is one of the fixed procurement spend categories. Every line item
// resolves to exactly one category; CategoryUtilities is the fallback bucket.
type Category string

// Spend category constants.
const (
	CategoryFood         Category = "Food & Beverages"
	CategoryHousekeeping Category = "Housekeeping"
	CategoryMaintenance  Category = "Maintenance"
	CategoryGuest        Category = "Guest Utilities"
	CategoryUtilities    Category = "Utilities & Supplies"
	CategoryMarketing    Category = "Marketing"
)

// Categories lists all categories in display order.
var Categories = []Category{
	CategoryFood,
	CategoryHousekeeping,
	CategoryMaintenance,
	CategoryGuest,
	CategoryUtilities,
	CategoryMarketing,
}

// Velocity buckets items by how frequently they are purchased within one
// analysis run. Buckets partition all distinct items seen.
type Velocity string

// Velocity bucket constants, fastest first.
const (
	VelocityFast   Velocity = "fast-moving"
	VelocityMedium Velocity = "medium"
	VelocitySlow   Velocity = "slow"
	VelocityVery   Velocity = "very-slow"
	VelocityRare   Velocity = "once-in-a-while"
)

// Velocities lists all velocity buckets, fastest first.
var Velocities = []Velocity{
	VelocityFast,
	VelocityMedium,
	VelocitySlow,
	VelocityVery,
	VelocityRare,
}
