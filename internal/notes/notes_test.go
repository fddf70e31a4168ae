package notes

import (
	"testing"

	"bugbounty-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"\n\t\n", ""},
		{"a", "a"},
		{"  a\n\n b  ", "a b"},
		{"one\ntwo\r\nthree", "one two three"},
		{"already clean", "already clean"},
		{"tabs\t\tand   spaces", "tabs and spaces"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "  a\n\n b  ", "x  y\tz", "plain"}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once))
	}
}

func sampleRows() []models.ChecklistRow {
	return []models.ChecklistRow{
		{ChecklistItemID: 1, Title: "Check headers", CategoryID: 10, CategoryName: "Configuration", Notes: "missing  CSP\nheader", Severity: models.SeverityMedium, IsChecked: true},
		{ChecklistItemID: 2, Title: "TLS config", CategoryID: 10, CategoryName: "Configuration", Notes: "TLS 1.0 enabled", Severity: models.SeverityHigh},
		{ChecklistItemID: 3, Title: "IDOR", CategoryID: 20, CategoryName: "Authorization", Notes: "  user id swap works  ", Severity: models.SeverityCritical},
		{ChecklistItemID: 4, Title: "Rate limit", CategoryID: 20, CategoryName: "Authorization", Notes: "   "}, // blank after trim, dropped
		{ChecklistItemID: 5, Title: "Unrated", CategoryID: 20, CategoryName: "Authorization", Notes: "odd behavior"}, // no severity
	}
}

func TestGroupByCategory(t *testing.T) {
	groups := GroupByCategory(sampleRows())
	require.Len(t, groups, 2)

	assert.Equal(t, uint(10), groups[0].CategoryID)
	assert.Equal(t, "Configuration", groups[0].CategoryName)
	require.Len(t, groups[0].Items, 2)
	assert.Equal(t, "missing CSP header", groups[0].Items[0].Notes)
	assert.True(t, groups[0].Items[0].IsChecked)

	assert.Equal(t, "Authorization", groups[1].CategoryName)
	require.Len(t, groups[1].Items, 2)
	assert.Equal(t, "user id swap works", groups[1].Items[0].Notes)
	// the blank-notes row is gone, the unrated one stays
	assert.Equal(t, "Unrated", groups[1].Items[1].Title)
}

func TestGroupBySeverity(t *testing.T) {
	groups := GroupBySeverity(sampleRows())
	require.Len(t, groups, 3)

	// ordered critical > high > medium; unrated rows are dropped
	assert.Equal(t, models.SeverityCritical, groups[0].Severity)
	assert.Equal(t, models.SeverityHigh, groups[1].Severity)
	assert.Equal(t, models.SeverityMedium, groups[2].Severity)

	assert.Equal(t, 1, groups[0].Count)
	assert.Equal(t, "IDOR", groups[0].Items)
}

func TestGroupBySeverityDistinctTitles(t *testing.T) {
	rows := []models.ChecklistRow{
		{ChecklistItemID: 1, Title: "XSS", CategoryID: 1, CategoryName: "Input", Notes: "search box", Severity: models.SeverityLow},
		{ChecklistItemID: 2, Title: "XSS", CategoryID: 1, CategoryName: "Input", Notes: "profile page", Severity: models.SeverityLow},
		{ChecklistItemID: 3, Title: "SQLi", CategoryID: 1, CategoryName: "Input", Notes: "login form", Severity: models.SeverityLow},
	}

	groups := GroupBySeverity(rows)
	require.Len(t, groups, 1)
	assert.Equal(t, 3, groups[0].Count)
	assert.Equal(t, "XSS, SQLi", groups[0].Items)
}

func TestBuildAggregatedText(t *testing.T) {
	assert.Equal(t, "", BuildAggregatedText(nil))

	text := BuildAggregatedText(GroupByCategory(sampleRows()))
	assert.Contains(t, text, "[Configuration]")
	assert.Contains(t, text, "[Authorization]")
	assert.Contains(t, text, "- [x] Check headers (MEDIUM): missing CSP header")
	assert.Contains(t, text, "- [ ] TLS config (HIGH): TLS 1.0 enabled")
	assert.Contains(t, text, "- [ ] Unrated: odd behavior")
}
