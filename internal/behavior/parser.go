package behavior

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/edsr/vigilo/internal/logging"
)

// Document is a fully read behavior script: the ordered record stream plus
// the simulation start clock.
type Document struct {
	// Records is the ordered top-level record sequence. Record i has
	// Order == i; the numbering is contiguous and strictly increasing
	// regardless of tag.
	Records []Record

	// StartClock is the simulation start time as an offset from midnight.
	// Zero when the script carries no startdate attribute.
	StartClock Clock

	// StartDate is the calendar date from the startdate attribute, if one
	// was given and parseable. It does not participate in rule evaluation;
	// the clock-of-day does.
	StartDate string
}

// Parse reads a behavior script from r. The root element must be <behavior>;
// each of its direct children becomes one record, numbered in document order.
func Parse(r io.Reader) (*Document, error) {
	logger := logging.GetLogger("behavior.parser")

	dec := xml.NewDecoder(r)
	doc := &Document{}

	// Find the root element.
	var root xml.StartElement
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("empty document: no <behavior> root element")
		}
		if err != nil {
			return nil, fmt.Errorf("reading behavior script: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			root = se
			break
		}
	}
	if root.Name.Local != "behavior" {
		return nil, fmt.Errorf("unexpected root element <%s>, want <behavior>", root.Name.Local)
	}

	for _, a := range root.Attr {
		if a.Name.Local == "startdate" {
			clock, date, err := ParseStartDate(a.Value)
			if err != nil {
				return nil, fmt.Errorf("parsing startdate %q: %w", a.Value, err)
			}
			doc.StartClock = clock
			doc.StartDate = date
		}
	}
	if doc.StartDate == "" {
		logger.Warn("no starting time given, simulation clock starts at 00:00:00")
	}

	// Number the direct children of the root in document order.
	order := 0
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading behavior script: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				attrs := make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					attrs[a.Name.Local] = a.Value
				}
				doc.Records = append(doc.Records, Record{
					Tag:   t.Name.Local,
					Attrs: attrs,
					Order: order,
				})
				order++
			}
			depth++
		case xml.EndElement:
			depth--
			if depth < 0 {
				// Closed the root element.
				logger.Debug("parsed %d records", len(doc.Records))
				return doc, nil
			}
		}
	}
	logger.Debug("parsed %d records", len(doc.Records))
	return doc, nil
}

// ParseFile reads the behavior script at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening behavior script: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
