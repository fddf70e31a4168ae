// Package notes builds the aggregated findings views from a target's
// checklist entries.
package notes

import (
	"fmt"
	"sort"
	"strings"

	"bugbounty-tracker/internal/models"
)

// Normalize trims leading/trailing whitespace and collapses every internal
// run of whitespace (including newlines) to a single space. It is applied
// when notes are written and again on every read path, so rows that predate
// the rule display the same as fresh ones. Idempotent.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CategoryGroup is one category's slice of noted checklist items, in item
// order_num order.
type CategoryGroup struct {
	CategoryID   uint        `json:"category_id"`
	CategoryName string      `json:"category_name"`
	Items        []NotedItem `json:"items"`
}

type NotedItem struct {
	ChecklistItemID uint            `json:"checklist_item_id"`
	Title           string          `json:"title"`
	Notes           string          `json:"notes"`
	IsChecked       bool            `json:"is_checked"`
	Severity        models.Severity `json:"severity"`
}

// GroupByCategory keeps rows with non-empty normalized notes and groups
// them by category. Rows must already be ordered by category order_num then
// item order_num; group order follows first appearance.
func GroupByCategory(rows []models.ChecklistRow) []CategoryGroup {
	var groups []CategoryGroup
	index := map[uint]int{}

	for _, row := range rows {
		text := Normalize(row.Notes)
		if text == "" {
			continue
		}

		i, ok := index[row.CategoryID]
		if !ok {
			i = len(groups)
			index[row.CategoryID] = i
			groups = append(groups, CategoryGroup{
				CategoryID:   row.CategoryID,
				CategoryName: row.CategoryName,
			})
		}

		groups[i].Items = append(groups[i].Items, NotedItem{
			ChecklistItemID: row.ChecklistItemID,
			Title:           row.Title,
			Notes:           text,
			IsChecked:       row.IsChecked,
			Severity:        row.Severity,
		})
	}

	return groups
}

// SeverityGroup summarizes noted entries sharing one severity. Items is a
// comma-joined list of the distinct item titles.
type SeverityGroup struct {
	Severity models.Severity `json:"severity"`
	Count    int             `json:"count"`
	Items    string          `json:"items"`
}

// GroupBySeverity buckets rows with non-empty notes by severity, ordered
// critical > high > medium > low > info. Rows without a severity are not a
// finding rating and are dropped from this view.
func GroupBySeverity(rows []models.ChecklistRow) []SeverityGroup {
	type bucket struct {
		count  int
		titles []string
		seen   map[string]bool
	}
	buckets := map[models.Severity]*bucket{}

	for _, row := range rows {
		if Normalize(row.Notes) == "" || row.Severity == "" {
			continue
		}
		b, ok := buckets[row.Severity]
		if !ok {
			b = &bucket{seen: map[string]bool{}}
			buckets[row.Severity] = b
		}
		b.count++
		if !b.seen[row.Title] {
			b.seen[row.Title] = true
			b.titles = append(b.titles, row.Title)
		}
	}

	groups := make([]SeverityGroup, 0, len(buckets))
	for sev, b := range buckets {
		groups = append(groups, SeverityGroup{
			Severity: sev,
			Count:    b.count,
			Items:    strings.Join(b.titles, ", "),
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Severity.Rank() < groups[j].Severity.Rank()
	})

	return groups
}

// BuildAggregatedText renders the by-category groups as the plain-text
// findings blob embedded in exports.
func BuildAggregatedText(groups []CategoryGroup) string {
	var b strings.Builder

	for gi, g := range groups {
		if gi > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s]\n", g.CategoryName)
		for _, item := range g.Items {
			mark := " "
			if item.IsChecked {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s", mark, item.Title)
			if item.Severity != "" {
				fmt.Fprintf(&b, " (%s)", strings.ToUpper(string(item.Severity)))
			}
			fmt.Fprintf(&b, ": %s\n", item.Notes)
		}
	}

	return b.String()
}
