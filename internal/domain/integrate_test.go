package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCensus(t *testing.T, names []string, populations []string) *CensusData {
	t.Helper()
	header := append([]string{"GEO_ID"}, names...)
	row := append([]string{"x"}, populations...)
	census, err := ParseCensus(header, [][]string{row})
	require.NoError(t, err)
	return census
}

func testDisasters(codes ...string) *DisasterIndex {
	index := NewDisasterIndex()
	for i, code := range codes {
		index.Add(code, DisasterRecord{DisasterNumber: i + 1, IncidentType: "Flood"})
	}
	return index
}

func TestIntegrate(t *testing.T) {
	census := testCensus(t,
		[]string{testCalifornia, testTexas, testWyoming},
		[]string{"39000000", "29000000", "580000"},
	)

	t.Run("semi-join driven by disaster codes", func(t *testing.T) {
		disasters := testDisasters("TX", "CA", "CA", "CA")

		records, skips := Integrate(census, disasters)
		require.Len(t, records, 2)
		assert.Equal(t, SkipCounts{}, skips)

		assert.Equal(t, "TX", records[0].StateCode)
		assert.Equal(t, testTexas, records[0].StateName)
		assert.Equal(t, 29000000, records[0].Population)
		assert.Equal(t, 1, records[0].DisasterCount())

		assert.Equal(t, "CA", records[1].StateCode)
		assert.Equal(t, 3, records[1].DisasterCount())
		assert.Equal(t, []int{2, 3, 4}, disasterNumbers(records[1].Disasters))
	})

	t.Run("traceability snapshots", func(t *testing.T) {
		disasters := testDisasters("CA", "CA")

		records, _ := Integrate(census, disasters)
		require.Len(t, records, 1)
		rec := records[0]

		assert.Equal(t, PopulationSource{StateName: testCalifornia, Population: 39000000}, rec.Source.Census)
		group, _ := disasters.Disasters("CA")
		assert.Equal(t, group, rec.Source.FEMA)
		assert.Equal(t, group, rec.Disasters)
	})

	t.Run("unknown and empty codes are skipped", func(t *testing.T) {
		disasters := testDisasters("", "GU", "tx", "TX")

		records, skips := Integrate(census, disasters)
		require.Len(t, records, 1)
		assert.Equal(t, "TX", records[0].StateCode)
		assert.Equal(t, 3, skips.UnknownCode)
		assert.Equal(t, 0, skips.NoPopulation)
	})

	t.Run("code without census population is skipped", func(t *testing.T) {
		disasters := testDisasters("NY", "CA")

		records, skips := Integrate(census, disasters)
		require.Len(t, records, 1)
		assert.Equal(t, "CA", records[0].StateCode)
		assert.Equal(t, 1, skips.NoPopulation)
	})

	t.Run("states without declarations are absent", func(t *testing.T) {
		records, _ := Integrate(census, testDisasters("CA"))
		for _, r := range records {
			assert.NotEqual(t, "WY", r.StateCode)
		}
	})

	t.Run("empty inputs", func(t *testing.T) {
		records, skips := Integrate(NewCensusData(), NewDisasterIndex())
		assert.Empty(t, records)
		assert.Equal(t, SkipCounts{}, skips)
	})
}

func TestIntegrateFromPopulation(t *testing.T) {
	census := testCensus(t,
		[]string{testCalifornia, "Guam", testTexas, testWyoming},
		[]string{"39000000", "150000", "29000000", "580000"},
	)
	disasters := testDisasters("TX", "CA", "CA", "GU")

	records, skips := IntegrateFromPopulation(census, disasters)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"CA", "TX", "WY"}, []string{records[0].StateCode, records[1].StateCode, records[2].StateCode})
	assert.Equal(t, []int{2, 1, 0}, []int{records[0].DisasterCount(), records[1].DisasterCount(), records[2].DisasterCount()})
	assert.Empty(t, records[2].Source.FEMA)
	assert.Equal(t, 1, skips.UnknownName)
	assert.Equal(t, 1, skips.UnknownCode)
}

func TestParseJoinMode(t *testing.T) {
	mode, err := ParseJoinMode("disasters")
	require.NoError(t, err)
	assert.Equal(t, JoinDisasters, mode)

	mode, err = ParseJoinMode("population")
	require.NoError(t, err)
	assert.Equal(t, JoinPopulation, mode)

	_, err = ParseJoinMode("outer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outer")
}

func TestStateTable(t *testing.T) {
	assert.Len(t, StateCodes(), 52)
	assert.IsIncreasing(t, StateCodes())
	assert.Equal(t, StateCodes(), StateCodes())

	name, ok := StateNameForCode("DC")
	require.True(t, ok)
	assert.Equal(t, "District of Columbia", name)

	_, ok = StateNameForCode("")
	assert.False(t, ok)
	_, ok = StateNameForCode("ca")
	assert.False(t, ok)

	for _, code := range StateCodes() {
		name, _ := StateNameForCode(code)
		back, ok := StateCodeForName(name)
		require.True(t, ok, name)
		assert.Equal(t, code, back)
	}
}

func disasterNumbers(ds []DisasterRecord) []int {
	out := make([]int, len(ds))
	for i, d := range ds {
		out[i] = d.DisasterNumber
	}
	return out
}
