package behavior

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

// Clock is a time of day expressed as an offset from midnight.
type Clock time.Duration

// Day is the length of one simulated day.
const Day = 24 * time.Hour

// At returns the clock-of-day after elapsed simulation time has passed.
func (c Clock) At(elapsed time.Duration) Clock {
	return Clock((time.Duration(c) + elapsed) % Day)
}

// Duration returns the clock as a duration since midnight.
func (c Clock) Duration() time.Duration { return time.Duration(c) }

func (c Clock) String() string {
	d := time.Duration(c)
	return fmt.Sprintf("%02d:%02d:%02d",
		int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}

// ParseStartDate parses the startdate attribute of a behavior script. The
// attribute has the form "<date>-HH:MM:SS"; only the clock component drives
// rule evaluation, the date component is parsed permissively and kept for
// reporting. An unparseable date is tolerated as long as the clock is valid.
func ParseStartDate(s string) (Clock, string, error) {
	// The clock is the last dash-separated component, so dates that
	// themselves contain dashes stay intact.
	i := strings.LastIndex(s, "-")
	if i < 0 {
		return 0, "", fmt.Errorf("expected <date>-HH:MM:SS, got %q", s)
	}
	datePart, timePart := s[:i], s[i+1:]

	clock, err := parseClock(timePart)
	if err != nil {
		return 0, "", err
	}

	date := datePart
	parser := dps.Parser{}
	cfg := &dps.Configuration{
		PreferredDateSource: dps.CurrentPeriod,
	}
	if parsed, err := parser.Parse(cfg, datePart); err == nil && !parsed.IsZero() {
		date = parsed.Time.Format("2006-01-02")
	}

	return clock, date, nil
}

// parseClock parses an HH:MM:SS time-of-day string.
func parseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("expected HH:MM:SS clock, got %q", s)
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("expected HH:MM:SS clock, got %q", s)
		}
		vals[i] = v
	}
	if vals[0] < 0 || vals[0] > 23 || vals[1] < 0 || vals[1] > 59 || vals[2] < 0 || vals[2] > 59 {
		return 0, fmt.Errorf("clock %q out of range", s)
	}
	d := time.Duration(vals[0])*time.Hour +
		time.Duration(vals[1])*time.Minute +
		time.Duration(vals[2])*time.Second
	return Clock(d), nil
}
