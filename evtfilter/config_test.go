package main

import (
	"os"
	"path/filepath"
	"testing"

	evtfilter "github.com/next-exp/evtfilter_go/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name string, content string) string {
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	return filename
}

func TestLoadConfigurationJSON(t *testing.T) {
	filename := writeConfig(t, "config.json", `{
		"file_in": "events.jsonl",
		"num_workers": 4,
		"use_energy": true,
		"en_min": 400,
		"en_max": 650,
		"x_roi": {"min": -10, "max": 10},
		"valid_channels": [1, 4, 7]
	}`)
	config, err := LoadConfiguration(filename)
	require.NoError(t, err)

	assert.Equal(t, "events.jsonl", config.FileIn)
	assert.Equal(t, 4, config.NumWorkers)
	assert.True(t, config.UseEnergy)
	assert.Equal(t, 400.0, config.EnMin)
	assert.Equal(t, 650.0, config.EnMax)
	assert.Equal(t, evtfilter.ROI{Min: -10, Max: 10}, config.XROI)
	assert.Equal(t, []evtfilter.ChannelID{1, 4, 7}, config.ValidChannels)
	// Defaults survive
	assert.True(t, config.CoincMode)
	assert.Equal(t, 1000000000, config.MaxEvents)
	assert.Equal(t, "mysql", config.DBDriver)
}

func TestLoadConfigurationYAML(t *testing.T) {
	filename := writeConfig(t, "config.yaml", `
file_in: events.jsonl
coinc_mode: false
min_ch: 3
sum_rows_cols: true
single_mm: true
y_roi: {min: 0, max: 25.5}
`)
	config, err := LoadConfiguration(filename)
	require.NoError(t, err)

	assert.False(t, config.CoincMode)
	assert.Equal(t, 3, config.MinCh)
	assert.True(t, config.SumRowsCols)
	assert.True(t, config.SingleMM)
	assert.Equal(t, evtfilter.ROI{Min: 0, Max: 25.5}, config.YROI)
	assert.Equal(t, evtfilter.DefaultMinEnergy, config.EnMin)
	assert.Equal(t, evtfilter.DefaultMaxEnergy, config.EnMax)
}

func TestLoadConfigurationErrors(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.json"))
	var openErr *evtfilter.ErrOpenFile
	assert.ErrorAs(t, err, &openErr)

	_, err = LoadConfiguration(writeConfig(t, "broken.json", `{"num_workers": `))
	assert.Error(t, err)
}
