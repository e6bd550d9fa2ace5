package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/saju/internal/saju"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.LeapMonthFallback = true
	cfg.Workers = 8
	cfg.Output.Format = FormatJSON
	cfg.Output.Romanize = true

	require.NoError(t, Save(dir, cfg))
	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("workers: 2\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, FormatText, cfg.Output.Format)
	assert.True(t, cfg.Output.Banner)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("output:\n  format: xml\n"), 0644))
	_, err := Load(dir)
	assert.ErrorContains(t, err, "output format")

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("workers: 0\n"), 0644))
	_, err = Load(dir)
	assert.ErrorContains(t, err, "workers")

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("workers: [\n"), 0644))
	_, err = Load(dir)
	assert.ErrorContains(t, err, "parsing config file")
}

func TestArchivePath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/etc/saju", "readings.db"), cfg.ArchivePath("/etc/saju"))

	cfg.Archive.Path = "/var/lib/saju.db"
	assert.Equal(t, "/var/lib/saju.db", cfg.ArchivePath("/etc/saju"))
}

func TestLoadInputs(t *testing.T) {
	dir := t.TempDir()

	jsonl := filepath.Join(dir, "inputs.jsonl")
	require.NoError(t, os.WriteFile(jsonl, []byte(
		`{"year":1990,"month":5,"day":17,"hour":"모름","gender":"female"}`+"\n\n"+
			`{"year":1984,"month":2,"day":2,"hour":"모름","calendarType":"lunar","isLeapMonth":true,"gender":"male"}`+"\n"), 0644))
	got, err := LoadInputs(jsonl)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, saju.BirthInput{Year: 1990, Month: 5, Day: 17, Hour: "모름", Gender: saju.Female}, got[0])
	assert.Equal(t, saju.Lunar, got[1].Calendar)
	assert.True(t, got[1].LeapMonth)

	yml := filepath.Join(dir, "inputs.yaml")
	require.NoError(t, os.WriteFile(yml, []byte(
		"inputs:\n  - year: 2000\n    month: 1\n    day: 1\n    hour: 모름\n    gender: male\n    calendar_type: solar\n"), 0644))
	got, err = LoadInputs(yml)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, saju.Solar, got[0].Calendar)

	bad := filepath.Join(dir, "bad.jsonl")
	require.NoError(t, os.WriteFile(bad, []byte("{\"year\":1}\nnot json\n"), 0644))
	_, err = LoadInputs(bad)
	assert.ErrorContains(t, err, "line 2")

	_, err = LoadInputs(filepath.Join(dir, "absent.jsonl"))
	assert.Error(t, err)
}
