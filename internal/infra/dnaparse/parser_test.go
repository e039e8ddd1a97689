package dnaparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResults_StructuredLines(t *testing.T) {
	text := `Aevum Genetics Laboratory Report
Trait: Caffeine Metabolism | rs762551 | Genotype: A/A | Outcome: Fast metabolizer | low risk | 72nd percentile
Trait: Lactose Tolerance | rs4988235 | Genotype: C/T | Outcome: Likely tolerant | moderate
Trait: Muscle Composition | rs1815739 | Genotype: C/C | Outcome: Power-oriented | typical
`

	report := ParseResults(text, 0.9)
	require.Len(t, report.Results, 3)

	first := report.Results[0]
	assert.Equal(t, "rs762551", first.RSID)
	assert.Equal(t, "A/A", first.Genotype)
	assert.Equal(t, "Caffeine Metabolism", first.Trait)
	assert.Equal(t, "nutrition", first.Category)
	assert.Equal(t, "Fast metabolizer", first.Outcome)
	assert.Equal(t, "LOW", first.RiskLevel)
	require.NotNil(t, first.Percentile)
	assert.InDelta(t, 72, *first.Percentile, 0.001)
	assert.Greater(t, first.Confidence, 0.7)

	assert.Equal(t, "fitness", report.Results[2].Category)
	assert.Equal(t, "MODERATE", report.Results[1].RiskLevel)
	assert.Greater(t, report.Confidence, 0.5)
	assert.Contains(t, report.Summary, "3 genetic results")
}

func TestParseResults_BareRSIDHasLowConfidence(t *testing.T) {
	report := ParseResults("some text rs123456 more text", 0.9)
	require.Len(t, report.Results, 1)

	result := report.Results[0]
	assert.Equal(t, "rs123456", result.RSID)
	assert.Less(t, result.Confidence, 0.6)
}

func TestParseResults_DeduplicatesRSIDs(t *testing.T) {
	text := "rs762551 genotype A/A\nrs762551 repeated mention"
	report := ParseResults(text, 0.9)
	assert.Len(t, report.Results, 1)
}

func TestParseResults_EmptyText(t *testing.T) {
	report := ParseResults("", 0.9)
	assert.Empty(t, report.Results)
	assert.Zero(t, report.Confidence)
	assert.Contains(t, report.Summary, "No genetic results")
}

func TestParseResults_WrappedFields(t *testing.T) {
	text := "Vitamin D Processing rs2282679\nGenotype: G/T, reduced levels, percentile: 31"
	report := ParseResults(text, 0.8)
	require.Len(t, report.Results, 1)

	result := report.Results[0]
	assert.Equal(t, "G/T", result.Genotype)
	assert.Equal(t, "LOW", result.RiskLevel)
	require.NotNil(t, result.Percentile)
	assert.InDelta(t, 31, *result.Percentile, 0.001)
	assert.Equal(t, "nutrition", result.Category)
}
