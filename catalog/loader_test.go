package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cruises.jsonl")
	content := `{"cruise_id":"CR001","ship_name":"Ocean Star","destination":"Caribbean","duration":7,"price_per_person":1299,"ports_of_call":["Nassau","Cozumel"]}

{"id":"CR002","name":"Northern Light","destination":"Alaska","duration":10,"price_per_person":899,"amenities":"Pool, Spa"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := LoadJSONL(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "CR001", records[0].CruiseID)
	assert.Equal(t, StringList{"Nassau", "Cozumel"}, records[0].PortsOfCall)
	// legacy field aliases
	assert.Equal(t, "CR002", records[1].CruiseID)
	assert.Equal(t, "Northern Light", records[1].ShipName)
	// comma separated list form
	assert.Equal(t, StringList{"Pool", "Spa"}, records[1].Amenities)
}

func TestLoadJSONLMissingFile(t *testing.T) {
	records, err := LoadJSONL(filepath.Join(t.TempDir(), "missing.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadJSONLMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"cruise_id\":\"CR001\"}\nnot json\n"), 0o644))
	_, err := LoadJSONL(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadPricingCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.csv")
	content := "starting_price,cruise_id\n999.50,CR001\n749,CR002\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := LoadPricingCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "CR001", records[0].CruiseID)
	assert.Equal(t, 999.50, records[0].StartingPrice)
}

func TestLoadPricingCSVMissingFile(t *testing.T) {
	records, err := LoadPricingCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadPricingCSVMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.csv")
	require.NoError(t, os.WriteFile(path, []byte("cruise_id,price\nCR001,999\n"), 0o644))
	_, err := LoadPricingCSV(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	records := []Cruise{
		{CruiseID: "CR001", ShipName: "Ocean Star", PricePerPerson: 1299, Description: "Nice."},
		{CruiseID: "CR001", ShipName: "Ocean Star", PricePerPerson: 1299, Description: "Duplicate."},
		{ShipName: "No ID", PricePerPerson: 100},
		{CruiseID: "CR003", ShipName: "Quiet Ship", PricePerPerson: 500},
	}
	report := Validate(records)
	assert.False(t, report.OK())
	assert.Equal(t, 4, report.Records)
	assert.Len(t, report.Errors, 2)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "CR003")
}

func TestStringListRoundTrip(t *testing.T) {
	l := StringList{"Pool", "Spa"}
	v, err := l.Value()
	require.NoError(t, err)
	var scanned StringList
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, l, scanned)

	var fromJSON StringList
	require.NoError(t, json.Unmarshal([]byte(`"Gym, Casino"`), &fromJSON))
	assert.Equal(t, StringList{"Gym", "Casino"}, fromJSON)

	var empty StringList
	require.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)
}
