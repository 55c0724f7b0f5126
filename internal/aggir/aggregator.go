package aggir

import (
	"fmt"

	"github.com/edsr/vigilo/internal/logging"
	"github.com/edsr/vigilo/internal/model"
)

// flagTable maps every finding kind to the dependency flags it lowers. The
// table is total over model.AllFindingKinds; a kind missing here is a
// programming defect, not an input error.
var flagTable = map[model.FindingKind][]string{
	model.FloodSensorProblem:   {Housekeeping},
	model.LightExceededMaxOn:   {Coherence, Management},
	model.HeaterExceededMaxOn:  {Coherence, Management},
	model.CoolerExceededMaxOn:  {Coherence, Management},
	model.HeaterNotNeeded:      {Coherence},
	model.CoolerNotNeeded:      {Coherence},
	model.HighCO:               {Cooking, Housekeeping},
	model.HighCO2:              {Housekeeping},
	model.MainDoorLeftOpen:     {Coherence, Location},
	model.SirenRinging:         {Coherence},
	model.NotOutOfRoom:         {Transfers, InMovements},
	model.AccidentBathroom:     {Toileting, Transfers},
	model.AccidentLivingRoom:   {Transfers},
	model.AccidentKitchen:      {Cooking, Transfers},
	model.AccidentHallway:      {Transfers, InMovements},
	model.IrregularMicturition: {Elimination, Toileting},
	model.NeverGoingOut:        {OutMovements, Transportation, Purchases, LeisureActs},
	model.NotChangingClothes:   {Dressing},
	model.LightsWrongTime:      {Coherence},
	model.WanderingWrongTime:   {Coherence, Location},
	model.AbandoningKitchen:    {Cooking, Alimentation},
}

// Aggregate walks the findings and applies each one's flag flips to the
// responsible person's profile. Every person receives a profile, findings
// or not. A finding with no attributed person lowers no flags. An unmapped
// finding kind is a defect and returns an error.
func Aggregate(findings []model.Finding, persons []*model.Person) (map[string]*Profile, error) {
	logger := logging.GetLogger("aggir.aggregator")

	profiles := make(map[string]*Profile, len(persons))
	for _, p := range persons {
		profiles[p.Name] = NewProfile()
	}

	for _, f := range findings {
		flags, ok := flagTable[f.Kind]
		if !ok {
			return nil, fmt.Errorf("finding kind %q has no dependency mapping", f.Kind)
		}
		if f.Executer == nil {
			continue
		}
		profile, ok := profiles[f.Executer.Name]
		if !ok {
			profile = NewProfile()
			profiles[f.Executer.Name] = profile
		}
		for _, name := range flags {
			profile.Lower(name)
		}
	}

	logger.Debug("aggregated %d findings into %d profiles", len(findings), len(profiles))
	return profiles, nil
}

// MappedFlags returns the flags lowered by a finding kind, for tests and
// reporting. The second return is false for unknown kinds.
func MappedFlags(kind model.FindingKind) ([]string, bool) {
	flags, ok := flagTable[kind]
	return flags, ok
}
