package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFillOutput(t *testing.T) {
	assert.Equal(t, "tracks_with_metadata.xlsx", defaultFillOutput("tracks.xlsx"))
	assert.Equal(t, "dir/in_with_metadata.xlsx", defaultFillOutput("dir/in.xlsx"))
}

func TestDefaultEnrichOutput(t *testing.T) {
	assert.Equal(t, "tracks.xlsx", defaultEnrichOutput("-", ""))
	assert.Equal(t, "tracks.csv", defaultEnrichOutput("-", "csv"))
	assert.Equal(t, "in_enriched.csv", defaultEnrichOutput("in.csv", ""))
	assert.Equal(t, "in_enriched.xlsx", defaultEnrichOutput("in.csv", "xlsx"))
	assert.Equal(t, "dir/in_enriched.xlsx", defaultEnrichOutput("dir/in.xlsx", ""))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "fill", "enrich", "convert"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}
