package dnaparse

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedResult is one genetic finding recovered from report text.
type ParsedResult struct {
	Trait      string
	Category   string
	RSID       string
	Genotype   string
	Outcome    string
	RiskLevel  string
	Percentile *float64
	Confidence float64
}

// ParsedReport is the full outcome of parsing one document.
type ParsedReport struct {
	Summary    string
	Results    []*ParsedResult
	Confidence float64
}

var (
	rsidRe       = regexp.MustCompile(`\brs\d{3,}\b`)
	genotypeRe   = regexp.MustCompile(`\b([ACGT])[/|]?([ACGT])\b`)
	percentileRe = regexp.MustCompile(`(?i)\b(\d{1,3}(?:\.\d+)?)\s*(?:th|st|nd|rd)?\s*percentile\b|\bpercentile[:\s]+(\d{1,3}(?:\.\d+)?)\b`)
	traitRe      = regexp.MustCompile(`(?i)\btrait[:\s]+([^|;:]+)`)
	outcomeRe    = regexp.MustCompile(`(?i)\b(?:outcome|result|status)[:\s]+([^|;:]+)`)
)

// riskKeywords map report vocabulary onto the normalized risk levels.
var riskKeywords = []struct {
	keyword string
	level   string
}{
	{"very high", "VERY_HIGH"},
	{"high risk", "HIGH"},
	{"elevated", "HIGH"},
	{"increased", "HIGH"},
	{"moderate", "MODERATE"},
	{"average", "MODERATE"},
	{"typical", "MODERATE"},
	{"reduced", "LOW"},
	{"decreased", "LOW"},
	{"low risk", "LOW"},
	{"low", "LOW"},
}

// categoryKeywords classify traits into report sections.
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"caffeine", "nutrition"},
	{"lactose", "nutrition"},
	{"vitamin", "nutrition"},
	{"gluten", "nutrition"},
	{"metabol", "nutrition"},
	{"muscle", "fitness"},
	{"endurance", "fitness"},
	{"recovery", "fitness"},
	{"vo2", "fitness"},
	{"sleep", "wellness"},
	{"stress", "wellness"},
	{"circadian", "wellness"},
	{"alzheimer", "health"},
	{"diabetes", "health"},
	{"cardio", "health"},
	{"cancer", "health"},
	{"thrombo", "health"},
}

// ParseResults scans extracted text line by line. Any line (or short run
// of lines) containing an rsID becomes a candidate result; surrounding
// fields raise its confidence.
func ParseResults(text string, extractionConfidence float64) *ParsedReport {
	lines := strings.Split(text, "\n")
	results := make([]*ParsedResult, 0)
	seen := make(map[string]bool)

	for i, line := range lines {
		rsid := rsidRe.FindString(line)
		if rsid == "" || seen[rsid] {
			continue
		}

		// Fields for one finding may wrap onto the following line.
		window := line
		if i+1 < len(lines) && rsidRe.FindString(lines[i+1]) == "" {
			window = line + " " + lines[i+1]
		}

		result := parseResultWindow(rsid, window, extractionConfidence)
		seen[rsid] = true
		results = append(results, result)
	}

	return &ParsedReport{
		Summary:    buildSummary(results),
		Results:    results,
		Confidence: aggregateConfidence(results, extractionConfidence),
	}
}

func parseResultWindow(rsid, window string, extractionConfidence float64) *ParsedResult {
	result := &ParsedResult{RSID: rsid}
	fields := 0

	if m := genotypeRe.FindStringSubmatch(window); m != nil {
		// Normalize to the allele-pair form reports display, e.g. "A/G".
		result.Genotype = m[1] + "/" + m[2]
		fields++
	}

	if m := traitRe.FindStringSubmatch(window); m != nil {
		result.Trait = strings.TrimSpace(m[1])
		fields++
	} else {
		result.Trait = guessTrait(window, rsid)
	}

	if m := outcomeRe.FindStringSubmatch(window); m != nil {
		result.Outcome = strings.TrimSpace(m[1])
		fields++
	}

	lower := strings.ToLower(window)
	for _, rk := range riskKeywords {
		if strings.Contains(lower, rk.keyword) {
			result.RiskLevel = rk.level
			fields++

			break
		}
	}

	if m := percentileRe.FindStringSubmatch(window); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 100 {
			result.Percentile = &v
			fields++
		}
	}

	result.Category = classifyCategory(result.Trait)

	// An rsID alone is a weak signal; each recognized field adds trust,
	// scaled by how much we trusted the extraction itself.
	result.Confidence = clamp(extractionConfidence * (0.4 + 0.12*float64(fields)))

	return result
}

// guessTrait falls back to the longest word run before the rsID.
func guessTrait(window, rsid string) string {
	idx := strings.Index(window, rsid)
	if idx <= 0 {
		return "Unknown trait"
	}

	prefix := strings.TrimSpace(strings.Trim(window[:idx], " -|;:,.("))
	words := strings.Fields(prefix)
	if len(words) == 0 {
		return "Unknown trait"
	}
	if len(words) > 5 {
		words = words[len(words)-5:]
	}

	return strings.Join(words, " ")
}

func classifyCategory(trait string) string {
	lower := strings.ToLower(trait)
	for _, ck := range categoryKeywords {
		if strings.Contains(lower, ck.keyword) {
			return ck.category
		}
	}

	return "general"
}

func buildSummary(results []*ParsedResult) string {
	if len(results) == 0 {
		return "No genetic results could be identified in this report."
	}

	categories := make(map[string]int)
	for _, r := range results {
		categories[r.Category]++
	}

	var sb strings.Builder
	sb.WriteString("Identified ")
	sb.WriteString(strconv.Itoa(len(results)))
	if len(results) == 1 {
		sb.WriteString(" genetic result")
	} else {
		sb.WriteString(" genetic results")
	}
	sb.WriteString(" across ")
	sb.WriteString(strconv.Itoa(len(categories)))
	if len(categories) == 1 {
		sb.WriteString(" category.")
	} else {
		sb.WriteString(" categories.")
	}

	return sb.String()
}

// aggregateConfidence weights result confidences by completeness, so a
// report with many well-formed findings scores above one with a single
// bare rsID.
func aggregateConfidence(results []*ParsedResult, extractionConfidence float64) float64 {
	if len(results) == 0 {
		return 0
	}

	var sum float64
	for _, r := range results {
		sum += r.Confidence
	}
	avg := sum / float64(len(results))

	// A handful of findings is more convincing than one.
	volume := float64(len(results)) / 5.0
	if volume > 1 {
		volume = 1
	}

	return clamp(avg*0.8 + extractionConfidence*volume*0.2)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}
