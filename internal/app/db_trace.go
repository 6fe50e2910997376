package app

import (
	"regexp"
	"strconv"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	// Matches the tuple list of a multi-row insert: "($1, $2), ($3, $4)".
	insertTuplesRegex = regexp.MustCompile(`(?i)VALUES (\([^()]*\))((?:, \([^()]*\))+)`)
)

// formatDBQueryForTrace keeps span attributes short: bulk inserts of scoring
// events and scorer rows are reduced to their first tuple plus a row count.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = insertTuplesRegex.ReplaceAllStringFunc(normalized, func(match string) string {
		parts := insertTuplesRegex.FindStringSubmatch(match)
		rows := 1 + strings.Count(parts[2], ", (")
		return "VALUES " + parts[1] + " /* " + strconv.Itoa(rows) + " rows */"
	})
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
