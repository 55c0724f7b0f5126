package rules

import "time"

// Rule thresholds. These are fixed by the rule battery, not configurable.
const (
	// LightMaxOn is the longest a light may stay on.
	LightMaxOn = 10 * time.Hour
	// ClimateMaxOn is the longest a heater or cooler may stay on.
	ClimateMaxOn = 12 * time.Hour

	// HeaterComfortKelvin: a heater turned on at or above this zone
	// temperature is not needed.
	HeaterComfortKelvin = 303.15
	// CoolerComfortKelvin: a cooler turned on at or below this zone
	// temperature is not needed.
	CoolerComfortKelvin = 289.15

	// COThreshold is the carbon monoxide concentration ceiling.
	COThreshold = 40.0
	// CO2Threshold is the carbon dioxide concentration ceiling.
	CO2Threshold = 9000.0

	// MainDoorMaxOpen is the longest the main door may stay open.
	MainDoorMaxOpen = 30 * time.Minute

	// BedroomMaxStay is the longest daytime bedroom stay before
	// sedentarism is flagged.
	BedroomMaxStay = 4 * time.Hour
	// Per-room ceilings for possible accidents.
	BathroomMaxStay   = 2 * time.Hour
	KitchenMaxStay    = 3 * time.Hour
	LivingRoomMaxStay = 5 * time.Hour
	HallwayMaxStay    = 1 * time.Hour

	// KitchenAbandonMax is the longest the cook may stay out of the
	// kitchen while a burner is on.
	KitchenAbandonMax = 45 * time.Minute

	// WanderingMaxActive is the longest a presence sensor may stay active
	// in the late-night window.
	WanderingMaxActive = 30 * time.Minute

	// BathroomCheckSpan: a situation longer than this with no bathroom
	// visit is irregular.
	BathroomCheckSpan = 4 * time.Hour
	// ExpectedBathroomPerDay and BathroomTolerancePerDay bound the
	// expected whole-simulation bathroom visit count (6×days ± 2×days).
	ExpectedBathroomPerDay  = 6
	BathroomTolerancePerDay = 2

	// LongRunThreshold gates the whole-simulation habit rules.
	LongRunThreshold = 24 * time.Hour

	// nightStart/nightEnd bound the night window 20:00:00-05:59:59.
	nightStart = 20 * time.Hour
	nightEnd   = 6 * time.Hour
)
