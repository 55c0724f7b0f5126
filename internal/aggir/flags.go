// Package aggir folds findings into the AGGIR dependency grid: a fixed set
// of 17 boolean independence indicators per occupant, all true by default
// and flipped false by findings. Flips are idempotent and never reversed.
package aggir

// The 17 dependency flags of the AGGIR grid. The first ten are the
// discriminatory variables, the remaining seven the illustrative ones.
const (
	Coherence            = "coherence"
	Location             = "location"
	Toileting            = "toileting"
	Dressing             = "dressing"
	Alimentation         = "alimentation"
	Elimination          = "elimination"
	Transfers            = "transfers"
	InMovements          = "in-movements"
	OutMovements         = "out-movements"
	DistantCommunication = "distant-communication"
	Management           = "management"
	Cooking              = "cooking"
	Housekeeping         = "housekeeping"
	Transportation       = "transportation"
	Purchases            = "purchases"
	MedicalTreatment     = "medical-treatment"
	LeisureActs          = "leisure-acts"
)

// FlagNames lists all dependency flags in grid order.
var FlagNames = []string{
	Coherence,
	Location,
	Toileting,
	Dressing,
	Alimentation,
	Elimination,
	Transfers,
	InMovements,
	OutMovements,
	DistantCommunication,
	Management,
	Cooking,
	Housekeeping,
	Transportation,
	Purchases,
	MedicalTreatment,
	LeisureActs,
}

// Profile is one occupant's dependency-flag state.
type Profile struct {
	flags map[string]bool
}

// NewProfile creates a profile with every flag true (fully independent).
func NewProfile() *Profile {
	p := &Profile{flags: make(map[string]bool, len(FlagNames))}
	for _, name := range FlagNames {
		p.flags[name] = true
	}
	return p
}

// Lower flips the named flag to false. Flipping an already-false flag is a
// no-op; flags never return to true.
func (p *Profile) Lower(name string) {
	p.flags[name] = false
}

// Flag returns the current value of the named flag.
func (p *Profile) Flag(name string) bool {
	return p.flags[name]
}

// Flags returns a copy of the full flag mapping.
func (p *Profile) Flags() map[string]bool {
	out := make(map[string]bool, len(p.flags))
	for k, v := range p.flags {
		out[k] = v
	}
	return out
}
