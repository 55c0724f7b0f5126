// Package report shapes the analysis output consumed by the CLI: per person,
// the deduplicated finding kinds attributed to them and their final
// dependency-flag mapping.
package report

import (
	"sort"
	"time"

	"github.com/edsr/vigilo/internal/aggir"
	"github.com/edsr/vigilo/internal/model"
	"github.com/edsr/vigilo/internal/rules"
)

// PersonReport is the analysis outcome for one occupant.
type PersonReport struct {
	Name     string          `json:"name" yaml:"name"`
	Type     string          `json:"type" yaml:"type"`
	Findings []string        `json:"findings" yaml:"findings"`
	Flags    map[string]bool `json:"dependency_flags" yaml:"dependency_flags"`
}

// Occurrence is one individual finding with its stable identity, kept in
// timeline order. The per-person Findings lists deduplicate by kind;
// occurrences preserve every hit so downstream consumers can correlate
// repeated anomalies across runs by UID.
type Occurrence struct {
	UID      string `json:"uid" yaml:"uid"`
	Kind     string `json:"kind" yaml:"kind"`
	Position int    `json:"position" yaml:"position"`
	Person   string `json:"person,omitempty" yaml:"person,omitempty"`
}

// Totals summarizes the whole run.
type Totals struct {
	Records        int           `json:"records" yaml:"records"`
	Situations     int           `json:"situations" yaml:"situations"`
	Findings       int           `json:"findings" yaml:"findings"`
	Elapsed        time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
	ElapsedHuman   string        `json:"elapsed" yaml:"elapsed"`
	BathroomVisits int           `json:"bathroom_visits" yaml:"bathroom_visits"`
}

// Report is the complete presentation-ready result.
type Report struct {
	StartDate   string         `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	StartClock  string         `json:"start_clock" yaml:"start_clock"`
	Persons     []PersonReport `json:"persons" yaml:"persons"`
	Occurrences []Occurrence   `json:"occurrences" yaml:"occurrences"`
	Totals      Totals         `json:"totals" yaml:"totals"`
}

// Build assembles a report from the rule-engine result and the aggregated
// profiles. Finding kinds are deduplicated per person and sorted; the
// aggregation itself already happened over the full multiset.
func Build(persons []*model.Person, result *rules.Result, profiles map[string]*aggir.Profile, records int) *Report {
	rep := &Report{
		Totals: Totals{
			Records:        records,
			Situations:     result.Situations,
			Findings:       len(result.Findings),
			Elapsed:        result.TotalElapsed,
			ElapsedHuman:   result.TotalElapsed.String(),
			BathroomVisits: result.BathroomVisits,
		},
	}

	rep.Occurrences = make([]Occurrence, 0, len(result.Findings))
	for _, f := range result.Findings {
		occ := Occurrence{
			UID:      f.UID,
			Kind:     string(f.Kind),
			Position: f.Position,
		}
		if f.Executer != nil {
			occ.Person = f.Executer.Name
		}
		rep.Occurrences = append(rep.Occurrences, occ)
	}
	sort.SliceStable(rep.Occurrences, func(i, j int) bool {
		return rep.Occurrences[i].Position < rep.Occurrences[j].Position
	})

	kindsByPerson := make(map[string]map[string]struct{})
	for _, f := range result.Findings {
		if f.Executer == nil {
			continue
		}
		kinds, ok := kindsByPerson[f.Executer.Name]
		if !ok {
			kinds = make(map[string]struct{})
			kindsByPerson[f.Executer.Name] = kinds
		}
		kinds[string(f.Kind)] = struct{}{}
	}

	for _, p := range persons {
		pr := PersonReport{
			Name:     p.Name,
			Type:     p.TypeName,
			Findings: []string{},
		}
		for kind := range kindsByPerson[p.Name] {
			pr.Findings = append(pr.Findings, kind)
		}
		sort.Strings(pr.Findings)
		if profile := profiles[p.Name]; profile != nil {
			pr.Flags = profile.Flags()
		} else {
			pr.Flags = aggir.NewProfile().Flags()
		}
		rep.Persons = append(rep.Persons, pr)
	}
	return rep
}
