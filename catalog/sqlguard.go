package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	lineCommentRE  = regexp.MustCompile(`--[^\n]*`)
	blockCommentRE = regexp.MustCompile(`(?s)/\*.*?\*/`)
	// single-quoted SQL string literals, '' is an escaped quote
	stringLiteralRE = regexp.MustCompile(`'(?:[^']|'')*'`)

	// statements that modify data or database state
	deniedRE = regexp.MustCompile(`(?i)\b(insert|update|delete|drop|alter|create|replace|truncate|attach|detach|pragma|vacuum|reindex|grant|revoke)\b`)
)

// GuardQuery rejects anything other than a single read-only statement.
// Generated SQL goes straight to the catalog database, so the guard runs
// before every ExecuteQuery call. String literals are blanked before the
// scan so text like 'create memories' does not trip the keyword check.
func GuardQuery(query string) error {
	stripped := blockCommentRE.ReplaceAllString(query, " ")
	stripped = lineCommentRE.ReplaceAllString(stripped, " ")
	stripped = stringLiteralRE.ReplaceAllString(stripped, "''")
	stripped = strings.TrimSpace(stripped)
	if stripped == "" {
		return fmt.Errorf("catalog: empty query")
	}
	stripped = strings.TrimSuffix(stripped, ";")
	if strings.Contains(stripped, ";") {
		return fmt.Errorf("catalog: multiple statements are not allowed")
	}
	lowered := strings.ToLower(stripped)
	if !strings.HasPrefix(lowered, "select") && !strings.HasPrefix(lowered, "with") {
		return fmt.Errorf("catalog: only SELECT queries are allowed")
	}
	if m := deniedRE.FindString(stripped); m != "" {
		return fmt.Errorf("catalog: statement %q is not allowed", strings.ToUpper(m))
	}
	return nil
}
