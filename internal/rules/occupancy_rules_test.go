package rules

import (
	"testing"
	"time"

	"github.com/edsr/vigilo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSedentarism(t *testing.T) {
	paul := testPerson("Paul")
	bedroom := testZone("bedroom", nil)
	kitchen := testZone("kitchen", nil)
	det := NewSedentarismDetector()

	t.Run("long daytime bedroom stay", func(t *testing.T) {
		in := testInput(9*time.Hour, []*model.Person{paul},
			moveEvent(0, paul, bedroom),
			timeEvent(1, 5*time.Hour),
			moveEvent(2, paul, kitchen),
		)
		findings := det.Detect(in)
		require.Len(t, findings, 1)
		assert.Equal(t, model.NotOutOfRoom, findings[0].Kind)
		assert.Same(t, paul, findings[0].Executer)
	})

	t.Run("stay at exactly the ceiling", func(t *testing.T) {
		in := testInput(9*time.Hour, []*model.Person{paul},
			moveEvent(0, paul, bedroom),
			timeEvent(1, BedroomMaxStay),
			moveEvent(2, paul, kitchen),
		)
		assert.Empty(t, det.Detect(in))
	})

	t.Run("evening stay is sleep", func(t *testing.T) {
		in := testInput(21*time.Hour, []*model.Person{paul},
			moveEvent(0, paul, bedroom),
			timeEvent(1, 8*time.Hour),
		)
		assert.Empty(t, det.Detect(in))
	})

	t.Run("daytime stay running into the night is sleep", func(t *testing.T) {
		in := testInput(17*time.Hour, []*model.Person{paul},
			moveEvent(0, paul, bedroom),
			timeEvent(1, 5*time.Hour),
		)
		assert.Empty(t, det.Detect(in))
	})

	t.Run("another person's move does not end the stay", func(t *testing.T) {
		marie := testPerson("Marie")
		in := testInput(9*time.Hour, []*model.Person{paul, marie},
			moveEvent(0, paul, bedroom),
			timeEvent(1, 3*time.Hour),
			moveEvent(2, marie, kitchen),
			timeEvent(3, 2*time.Hour),
			moveEvent(4, paul, kitchen),
		)
		findings := det.Detect(in)
		require.Len(t, findings, 1)
		assert.Equal(t, model.NotOutOfRoom, findings[0].Kind)
	})
}

func TestAccidentStays(t *testing.T) {
	paul := testPerson("Paul")
	det := NewAccidentDetector()

	tests := []struct {
		name string
		zone *model.Zone
		stay time.Duration
		want []model.FindingKind
	}{
		{name: "bathroom too long", zone: testZone("bathroom", nil), stay: 150 * time.Minute, want: []model.FindingKind{model.AccidentBathroom}},
		{name: "bathroom within ceiling", zone: testZone("bathroom", nil), stay: 2 * time.Hour, want: nil},
		{name: "kitchen too long", zone: testZone("kitchen", nil), stay: 4 * time.Hour, want: []model.FindingKind{model.AccidentKitchen}},
		{name: "living room too long", zone: testZone("livingroom", nil), stay: 6 * time.Hour, want: []model.FindingKind{model.AccidentLivingRoom}},
		{name: "hallway too long", zone: testZone("hallway", nil), stay: 90 * time.Minute, want: []model.FindingKind{model.AccidentHallway}},
		{name: "numbered room still matches", zone: testZone("bathroom2", nil), stay: 3 * time.Hour, want: []model.FindingKind{model.AccidentBathroom}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := testInput(10*time.Hour, []*model.Person{paul},
				moveEvent(0, paul, tc.zone),
				timeEvent(1, tc.stay),
			)
			assert.Equal(t, tc.want, kinds(det.Detect(in)))
		})
	}
}

func TestWandering(t *testing.T) {
	paul := testPerson("Paul")
	hallway := testZone("hallway", nil)
	presence := testDevice("Presence", "iCasa.PresenceSensor", hallway)
	det := NewWanderingDetector()

	t.Run("late night activity past ceiling", func(t *testing.T) {
		in := testInput(2*time.Hour, []*model.Person{paul},
			propEvent(0, presence, "presenceSensor.sensedPresence", "true", paul),
			timeEvent(1, time.Hour),
			propEvent(2, presence, "presenceSensor.sensedPresence", "false", paul),
		)
		findings := det.Detect(in)
		require.Len(t, findings, 1)
		assert.Equal(t, model.WanderingWrongTime, findings[0].Kind)
	})

	t.Run("daytime activity is fine", func(t *testing.T) {
		in := testInput(14*time.Hour, []*model.Person{paul},
			propEvent(0, presence, "presenceSensor.sensedPresence", "true", paul),
			timeEvent(1, time.Hour),
		)
		assert.Empty(t, det.Detect(in))
	})

	t.Run("evening is not late night", func(t *testing.T) {
		in := testInput(22*time.Hour, []*model.Person{paul},
			propEvent(0, presence, "presenceSensor.sensedPresence", "true", paul),
			timeEvent(1, time.Hour),
		)
		assert.Empty(t, det.Detect(in))
	})

	t.Run("short late night activity is fine", func(t *testing.T) {
		in := testInput(time.Hour, []*model.Person{paul},
			propEvent(0, presence, "presenceSensor.sensedPresence", "true", paul),
			timeEvent(1, 10*time.Minute),
			propEvent(2, presence, "presenceSensor.sensedPresence", "false", paul),
			timeEvent(3, 2*time.Hour),
		)
		assert.Empty(t, det.Detect(in))
	})
}

func TestMicturition(t *testing.T) {
	paul := testPerson("Paul")
	bedroom := testZone("bedroom", nil)
	bathroom := testZone("bathroom", nil)
	det := NewMicturitionDetector()

	t.Run("long situation with no bathroom visit", func(t *testing.T) {
		in := testInput(8*time.Hour, []*model.Person{paul},
			moveEvent(0, paul, bedroom),
			timeEvent(1, 5*time.Hour),
		)
		findings := det.Detect(in)
		require.Len(t, findings, 1)
		assert.Equal(t, model.IrregularMicturition, findings[0].Kind)
		assert.Same(t, paul, findings[0].Executer)
	})

	t.Run("bathroom visit clears the rule", func(t *testing.T) {
		in := testInput(8*time.Hour, []*model.Person{paul},
			moveEvent(0, paul, bathroom),
			timeEvent(1, 5*time.Hour),
		)
		assert.Empty(t, det.Detect(in))
	})

	t.Run("short situation stays silent", func(t *testing.T) {
		in := testInput(8*time.Hour, []*model.Person{paul},
			moveEvent(0, paul, bedroom),
			timeEvent(1, 4*time.Hour),
		)
		assert.Empty(t, det.Detect(in))
	})

	t.Run("multiple persons stay silent", func(t *testing.T) {
		marie := testPerson("Marie")
		in := testInput(8*time.Hour, []*model.Person{paul, marie},
			moveEvent(0, paul, bedroom),
			timeEvent(1, 5*time.Hour),
		)
		assert.Empty(t, det.Detect(in))
	})
}
