package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/edsr/vigilo/internal/aggir"
	"gopkg.in/yaml.v3"
)

// Render writes the report in the requested format: "text", "json" or
// "yaml".
func (r *Report) Render(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(r)
	case "text", "":
		return r.renderText(w)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func (r *Report) renderText(w io.Writer) error {
	if r.StartDate != "" {
		fmt.Fprintf(w, "Simulation start: %s %s\n", r.StartDate, r.StartClock)
	} else {
		fmt.Fprintf(w, "Simulation start: %s\n", r.StartClock)
	}
	fmt.Fprintf(w, "Records: %d  Situations: %d  Elapsed: %s  Findings: %d\n\n",
		r.Totals.Records, r.Totals.Situations, r.Totals.ElapsedHuman, r.Totals.Findings)

	for _, p := range r.Persons {
		fmt.Fprintf(w, "Person %s (%s)\n", p.Name, p.Type)

		if len(p.Findings) == 0 {
			fmt.Fprintf(w, "  No anomalies detected.\n")
		} else {
			fmt.Fprintf(w, "  Anomalies:\n")
			for _, kind := range p.Findings {
				fmt.Fprintf(w, "    - %s\n", kind)
			}
		}

		fmt.Fprintf(w, "  Dependency flags:\n")
		tw := tabwriter.NewWriter(w, 4, 4, 2, ' ', 0)
		for _, name := range aggir.FlagNames {
			state := "independent"
			if !p.Flags[name] {
				state = "DEPENDENT"
			}
			fmt.Fprintf(tw, "    %s\t%s\n", name, state)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}
