package behavior

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumbersRecordsInDocumentOrder(t *testing.T) {
	script := `<behavior startdate="01/15/2024-08:30:00">
		<create-zone id="Kitchen" leftX="0" topY="0" ZLength="5"/>
		<create-person id="Paul" type="grandfather"/>
		<move-person-zone personId="Paul" zoneId="Kitchen"/>
		<delay value="5" unit="m"/>
	</behavior>`

	doc, err := Parse(strings.NewReader(script))
	require.NoError(t, err)
	require.Len(t, doc.Records, 4)

	for i, rec := range doc.Records {
		assert.Equal(t, i, rec.Order, "record %d must carry its document position", i)
	}
	assert.Equal(t, "create-zone", doc.Records[0].Tag)
	assert.Equal(t, "create-person", doc.Records[1].Tag)
	assert.Equal(t, "move-person-zone", doc.Records[2].Tag)
	assert.Equal(t, "delay", doc.Records[3].Tag)

	assert.Equal(t, "Kitchen", doc.Records[0].Attrs["id"])
	assert.Equal(t, "Paul", doc.Records[2].Attrs["personId"])
}

func TestParseStartClock(t *testing.T) {
	script := `<behavior startdate="01/15/2024-20:15:30"></behavior>`
	doc, err := Parse(strings.NewReader(script))
	require.NoError(t, err)

	want := 20*time.Hour + 15*time.Minute + 30*time.Second
	assert.Equal(t, want, doc.StartClock.Duration())
	assert.Equal(t, "2024-01-15", doc.StartDate)
}

func TestParseMissingStartDateDefaultsToMidnight(t *testing.T) {
	script := `<behavior><delay value="1" unit="h"/></behavior>`
	doc, err := Parse(strings.NewReader(script))
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), doc.StartClock.Duration())
	assert.Empty(t, doc.StartDate)
	require.Len(t, doc.Records, 1)
}

func TestParseIgnoresNestedElements(t *testing.T) {
	script := `<behavior>
		<create-zone id="Bedroom">
			<nested ignored="yes"/>
		</create-zone>
		<delay value="0" unit="s"/>
	</behavior>`

	doc, err := Parse(strings.NewReader(script))
	require.NoError(t, err)
	require.Len(t, doc.Records, 2, "only direct children of the root become records")
	assert.Equal(t, "create-zone", doc.Records[0].Tag)
	assert.Equal(t, "delay", doc.Records[1].Tag)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{name: "empty input", script: ""},
		{name: "wrong root element", script: `<scenario></scenario>`},
		{name: "malformed startdate", script: `<behavior startdate="nonsense"></behavior>`},
		{name: "truncated xml", script: `<behavior><delay value="1"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.script))
			assert.Error(t, err)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "livingroom", Normalize("Living Room"))
	assert.Equal(t, "kitchen", Normalize("kitchen"))
	assert.Equal(t, "bathroom1", Normalize(" Bathroom 1 "))
}
