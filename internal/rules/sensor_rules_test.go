package rules

import (
	"testing"
	"time"

	"github.com/edsr/vigilo/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSensorThresholds(t *testing.T) {
	paul := testPerson("Paul")
	kitchen := testZone("kitchen", nil)
	co2 := testDevice("CO2", "iCasa.CO2GasSensor", kitchen)
	co := testDevice("CO", "iCasa.COGasSensor", kitchen)
	flood := testDevice("Flood", "iCasa.FloodSensor", kitchen)
	siren := testDevice("Siren", "iCasa.Siren", kitchen)
	det := NewSensorThresholdDetector()

	tests := []struct {
		name  string
		dev   *model.Device
		prop  string
		value string
		want  []model.FindingKind
	}{
		{name: "CO2 at threshold", dev: co2, prop: "co2Concentration", value: "9000", want: []model.FindingKind{model.HighCO2}},
		{name: "CO2 above threshold", dev: co2, prop: "co2Concentration", value: "9500.5", want: []model.FindingKind{model.HighCO2}},
		{name: "CO2 just below threshold", dev: co2, prop: "co2Concentration", value: "8999", want: nil},
		{name: "CO at threshold", dev: co, prop: "coConcentration", value: "40", want: []model.FindingKind{model.HighCO}},
		{name: "CO below threshold", dev: co, prop: "coConcentration", value: "39.9", want: nil},
		{name: "flood sensed", dev: flood, prop: "floodSensor.currentStatus", value: "true", want: []model.FindingKind{model.FloodSensorProblem}},
		{name: "flood clear", dev: flood, prop: "floodSensor.currentStatus", value: "false", want: nil},
		{name: "siren on", dev: siren, prop: "siren.status", value: "true", want: []model.FindingKind{model.SirenRinging}},
		{name: "unparseable concentration", dev: co2, prop: "co2Concentration", value: "lots", want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := testInput(10*time.Hour, []*model.Person{paul},
				propEvent(0, tc.dev, tc.prop, tc.value, paul))
			assert.Equal(t, tc.want, kinds(det.Detect(in)))
		})
	}
}

func TestMainDoor(t *testing.T) {
	paul := testPerson("Paul")
	hallway := testZone("hallway", nil)
	bedroom := testZone("bedroom", nil)
	mainDoor := testDevice("FrontDoor", "iCasa.DoorWindowSensor", hallway)
	bedroomDoor := testDevice("BedroomDoor", "iCasa.DoorWindowSensor", bedroom)
	det := NewMainDoorDetector()

	t.Run("left open past ceiling", func(t *testing.T) {
		in := testInput(10*time.Hour, []*model.Person{paul},
			propEvent(0, mainDoor, "opened", "true", paul),
			timeEvent(1, time.Hour),
		)
		assert.Equal(t, []model.FindingKind{model.MainDoorLeftOpen}, kinds(det.Detect(in)))
	})

	t.Run("closed in time", func(t *testing.T) {
		in := testInput(10*time.Hour, []*model.Person{paul},
			propEvent(0, mainDoor, "opened", "true", paul),
			timeEvent(1, 20*time.Minute),
			propEvent(2, mainDoor, "opened", "false", paul),
			timeEvent(3, 2*time.Hour),
		)
		assert.Empty(t, det.Detect(in))
	})

	t.Run("exactly the ceiling is acceptable", func(t *testing.T) {
		in := testInput(10*time.Hour, []*model.Person{paul},
			propEvent(0, mainDoor, "opened", "true", paul),
			timeEvent(1, MainDoorMaxOpen),
			propEvent(2, mainDoor, "opened", "false", paul),
		)
		assert.Empty(t, det.Detect(in))
	})

	t.Run("other doors are not the main door", func(t *testing.T) {
		in := testInput(10*time.Hour, []*model.Person{paul},
			propEvent(0, bedroomDoor, "opened", "true", paul),
			timeEvent(1, 3*time.Hour),
		)
		assert.Empty(t, det.Detect(in))
	})

	t.Run("no main door configured", func(t *testing.T) {
		in := testInput(10*time.Hour, []*model.Person{paul},
			propEvent(0, mainDoor, "opened", "true", paul),
			timeEvent(1, time.Hour),
		)
		in.MainDoor = ""
		assert.Empty(t, det.Detect(in))
	})
}
