package model

// FindingKind identifies one detectable anomaly pattern. The vocabulary is
// closed; the dependency aggregator's table must cover every kind.
type FindingKind string

const (
	FloodSensorProblem   FindingKind = "FloodSensorProblem"
	LightExceededMaxOn   FindingKind = "LightExceededMaxOn"
	HeaterExceededMaxOn  FindingKind = "HeaterExceededMaxOn"
	CoolerExceededMaxOn  FindingKind = "CoolerExceededMaxOn"
	HeaterNotNeeded      FindingKind = "HeaterNotNeeded"
	CoolerNotNeeded      FindingKind = "CoolerNotNeeded"
	HighCO               FindingKind = "HighCO"
	HighCO2              FindingKind = "HighCO2"
	MainDoorLeftOpen     FindingKind = "MainDoorLeftOpen"
	SirenRinging         FindingKind = "SirenRinging"
	NotOutOfRoom         FindingKind = "NotOutOfRoom"
	AccidentBathroom     FindingKind = "AccidentBathroom"
	AccidentLivingRoom   FindingKind = "AccidentLivingRoom"
	AccidentKitchen      FindingKind = "AccidentKitchen"
	AccidentHallway      FindingKind = "AccidentHallway"
	IrregularMicturition FindingKind = "IrregularMicturition"
	NeverGoingOut        FindingKind = "NeverGoingOut"
	NotChangingClothes   FindingKind = "NotChangingClothes"
	LightsWrongTime      FindingKind = "LightsWrongTime"
	WanderingWrongTime   FindingKind = "WanderingWrongTime"
	AbandoningKitchen    FindingKind = "AbandoningKitchen"
)

// AllFindingKinds enumerates the closed vocabulary. Tests use it to assert
// the aggregator table is total.
var AllFindingKinds = []FindingKind{
	FloodSensorProblem,
	LightExceededMaxOn,
	HeaterExceededMaxOn,
	CoolerExceededMaxOn,
	HeaterNotNeeded,
	CoolerNotNeeded,
	HighCO,
	HighCO2,
	MainDoorLeftOpen,
	SirenRinging,
	NotOutOfRoom,
	AccidentBathroom,
	AccidentLivingRoom,
	AccidentKitchen,
	AccidentHallway,
	IrregularMicturition,
	NeverGoingOut,
	NotChangingClothes,
	LightsWrongTime,
	WanderingWrongTime,
	AbandoningKitchen,
}

// Finding is one detected anomaly occurrence. Duplicate kinds for the same
// person are expected; reporting deduplicates them, aggregation applies each
// occurrence (the flag flips are idempotent, so the result is the same).
type Finding struct {
	// UID uniquely identifies this occurrence.
	UID string
	// Position is the record order of the event that triggered the finding.
	Position int
	// Executer is the person the finding is attributed to, or nil.
	Executer *Person
	// Kind names the anomaly pattern.
	Kind FindingKind
}
