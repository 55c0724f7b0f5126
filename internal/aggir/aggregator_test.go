package aggir

import (
	"testing"

	"github.com/edsr/vigilo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finding(kind model.FindingKind, exec *model.Person) model.Finding {
	return model.Finding{UID: "test", Position: 0, Executer: exec, Kind: kind}
}

func TestEveryFindingKindIsMapped(t *testing.T) {
	for _, kind := range model.AllFindingKinds {
		flags, ok := MappedFlags(kind)
		assert.True(t, ok, "kind %q must map to dependency flags", kind)
		assert.NotEmpty(t, flags, "kind %q must lower at least one flag", kind)
		for _, f := range flags {
			assert.Contains(t, FlagNames, f, "kind %q maps to unknown flag %q", kind, f)
		}
	}
}

func TestNewProfileIsFullyIndependent(t *testing.T) {
	p := NewProfile()
	for _, name := range FlagNames {
		assert.True(t, p.Flag(name))
	}
	assert.Len(t, p.Flags(), len(FlagNames))
}

func TestAggregateLowersFlags(t *testing.T) {
	paul := &model.Person{Name: "Paul", TypeName: "grandfather"}
	marie := &model.Person{Name: "Marie", TypeName: "grandmother"}

	profiles, err := Aggregate([]model.Finding{
		finding(model.NeverGoingOut, paul),
		finding(model.AbandoningKitchen, paul),
	}, []*model.Person{paul, marie})
	require.NoError(t, err)
	require.Contains(t, profiles, "Paul")
	require.Contains(t, profiles, "Marie")

	pp := profiles["Paul"]
	assert.False(t, pp.Flag(OutMovements))
	assert.False(t, pp.Flag(Transportation))
	assert.False(t, pp.Flag(Purchases))
	assert.False(t, pp.Flag(LeisureActs))
	assert.False(t, pp.Flag(Cooking))
	assert.False(t, pp.Flag(Alimentation))
	assert.True(t, pp.Flag(Coherence), "unrelated flags stay up")

	for _, name := range FlagNames {
		assert.True(t, profiles["Marie"].Flag(name), "a person without findings stays fully independent")
	}
}

func TestAggregateRepeatedFindingsAreIdempotent(t *testing.T) {
	paul := &model.Person{Name: "Paul"}

	once, err := Aggregate([]model.Finding{
		finding(model.LightsWrongTime, paul),
	}, []*model.Person{paul})
	require.NoError(t, err)

	thrice, err := Aggregate([]model.Finding{
		finding(model.LightsWrongTime, paul),
		finding(model.LightsWrongTime, paul),
		finding(model.LightsWrongTime, paul),
	}, []*model.Person{paul})
	require.NoError(t, err)

	assert.Equal(t, once["Paul"].Flags(), thrice["Paul"].Flags())
}

func TestAggregateOrderDoesNotMatter(t *testing.T) {
	paul := &model.Person{Name: "Paul"}
	a := finding(model.MainDoorLeftOpen, paul)
	b := finding(model.AccidentBathroom, paul)

	fwd, err := Aggregate([]model.Finding{a, b}, []*model.Person{paul})
	require.NoError(t, err)
	rev, err := Aggregate([]model.Finding{b, a}, []*model.Person{paul})
	require.NoError(t, err)

	assert.Equal(t, fwd["Paul"].Flags(), rev["Paul"].Flags())
}

func TestAggregateUnattributedFindingLowersNothing(t *testing.T) {
	paul := &model.Person{Name: "Paul"}

	profiles, err := Aggregate([]model.Finding{
		finding(model.SirenRinging, nil),
	}, []*model.Person{paul})
	require.NoError(t, err)

	for _, name := range FlagNames {
		assert.True(t, profiles["Paul"].Flag(name))
	}
}

func TestAggregateUnknownKindIsAnError(t *testing.T) {
	paul := &model.Person{Name: "Paul"}
	_, err := Aggregate([]model.Finding{
		finding(model.FindingKind("made-up"), nil),
	}, []*model.Person{paul})
	assert.Error(t, err, "the mapping check runs even for unattributed findings")
}
