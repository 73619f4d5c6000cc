package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeExports runs the CSV and JSON sinks over n synthetic records and
// returns the artifact paths.
func writeExports(t *testing.T, n int) (string, string) {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "patent_grants.csv")
	jsonPath := filepath.Join(dir, "patent_grants.json")

	cf, err := os.Create(csvPath)
	require.NoError(t, err)
	jf, err := os.Create(jsonPath)
	require.NoError(t, err)

	cs, err := NewCSVSink(cf, false)
	require.NoError(t, err)
	js, err := NewJSONSink(jf, false)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		rec := fullRecord()
		id := *rec.GrantID + string(rune('A'+i))
		rec.GrantID = &id
		require.NoError(t, cs.Write(rec))
		require.NoError(t, js.Write(rec))
	}

	require.NoError(t, cs.Close())
	require.NoError(t, js.Close())
	require.NoError(t, cf.Close())
	require.NoError(t, jf.Close())

	return csvPath, jsonPath
}

func TestVerifyConsistentExports(t *testing.T) {
	csvPath, jsonPath := writeExports(t, 3)

	assert.NoError(t, Verify(csvPath, jsonPath, 3))
	assert.NoError(t, Verify(csvPath, jsonPath, -1), "expect < 0 skips the count check")
}

func TestVerifyEmptyExports(t *testing.T) {
	csvPath, jsonPath := writeExports(t, 0)
	assert.NoError(t, Verify(csvPath, jsonPath, 0))
}

func TestVerifyCountMismatch(t *testing.T) {
	csvPath, jsonPath := writeExports(t, 2)

	err := Verify(csvPath, jsonPath, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5 record(s)")
}

func TestVerifyCollapsedJSONKeys(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "patent_grants.csv")
	jsonPath := filepath.Join(dir, "patent_grants.json")

	// Two CSV rows sharing a grant ID collapse to one JSON key.
	cf, err := os.Create(csvPath)
	require.NoError(t, err)
	cs, err := NewCSVSink(cf, false)
	require.NoError(t, err)
	require.NoError(t, cs.Write(fullRecord()))
	require.NoError(t, cs.Write(fullRecord()))
	require.NoError(t, cs.Close())
	require.NoError(t, cf.Close())

	require.NoError(t, os.WriteFile(jsonPath,
		[]byte(`{"US10361423": {"patent_title": "Battery separator"}}`), 0o644))

	err = Verify(csvPath, jsonPath, -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CSV has 2 record(s) but JSON has 1")
}

func TestVerifyFieldValueMismatch(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "patent_grants.csv")
	jsonPath := filepath.Join(dir, "patent_grants.json")

	cf, err := os.Create(csvPath)
	require.NoError(t, err)
	cs, err := NewCSVSink(cf, false)
	require.NoError(t, err)
	require.NoError(t, cs.Write(fullRecord()))
	require.NoError(t, cs.Close())
	require.NoError(t, cf.Close())

	// Same key and count, different title.
	jf, err := os.Create(jsonPath)
	require.NoError(t, err)
	js, err := NewJSONSink(jf, false)
	require.NoError(t, err)
	rec := fullRecord()
	rec.Title = str("Something else entirely")
	require.NoError(t, js.Write(rec))
	require.NoError(t, js.Close())
	require.NoError(t, jf.Close())

	err = Verify(csvPath, jsonPath, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "patent_title")
}

func TestVerifyMissingEntryForGrant(t *testing.T) {
	csvPath, jsonPath := writeExports(t, 1)

	// Replace the JSON with an entry under a different key.
	require.NoError(t, os.WriteFile(jsonPath,
		[]byte(`{"US9999999": {"patent_title": "Battery separator"}}`), 0o644))

	err := Verify(csvPath, jsonPath, -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no JSON entry")
}

func TestVerifyBadHeader(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "patent_grants.csv")
	jsonPath := filepath.Join(dir, "patent_grants.json")

	require.NoError(t, os.WriteFile(csvPath, []byte("wrong,header\n"), 0o644))
	require.NoError(t, os.WriteFile(jsonPath, []byte("{}"), 0o644))

	assert.Error(t, Verify(csvPath, jsonPath, -1))
}

func TestVerifyMissingFiles(t *testing.T) {
	dir := t.TempDir()
	csvPath, jsonPath := writeExports(t, 1)

	assert.Error(t, Verify(filepath.Join(dir, "absent.csv"), jsonPath, -1))
	assert.Error(t, Verify(csvPath, filepath.Join(dir, "absent.json"), -1))
}
