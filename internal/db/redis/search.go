package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/aperture-cloud/photodex/internal/db"
	"github.com/aperture-cloud/photodex/internal/domain/search"
)

// Search runs a boolean keyword search via FT.SEARCH.
func (s *Store) Search(ctx context.Context, q *db.Query) (*db.SearchResult, error) {
	queryStr, err := buildBooleanQuery(q)
	if err != nil {
		return nil, err
	}

	args := []string{q.IndexName, queryStr}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, "LIMIT", "0", strconv.Itoa(limit), "DIALECT", "2")

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseSearchResult(raw)
}

// buildBooleanQuery translates a boolean keyword query into an FT.SEARCH
// query string. Each keyword becomes a union across the configured fields;
// the match mode joins per-keyword clauses by intersection (all) or union (any).
func buildBooleanQuery(q *db.Query) (string, error) {
	if q.IndexName == "" {
		return "", fmt.Errorf("index name is required")
	}
	if len(q.Keywords) == 0 {
		return "", fmt.Errorf("at least one keyword is required")
	}
	if len(q.TagFields) == 0 && len(q.TextFields) == 0 {
		return "", fmt.Errorf("at least one match field is required")
	}

	clauses := make([]string, 0, len(q.Keywords))
	for _, kw := range q.Keywords {
		clauses = append(clauses, buildKeywordClause(kw, q.TagFields, q.TextFields))
	}

	switch q.Mode {
	case search.MatchAll:
		return strings.Join(clauses, " "), nil
	case search.MatchAny, "":
		if len(clauses) == 1 {
			return clauses[0], nil
		}
		return "(" + strings.Join(clauses, " | ") + ")", nil
	default:
		return "", fmt.Errorf("unknown match mode %q", q.Mode)
	}
}

// buildKeywordClause matches one keyword against every field: a union of a
// TAG clause per tag field and a TEXT clause per text field.
func buildKeywordClause(keyword string, tagFields, textFields []string) string {
	parts := make([]string, 0, len(tagFields)+len(textFields))

	for _, f := range tagFields {
		parts = append(parts, fmt.Sprintf("@%s:{%s}", f, tagEscaper.Replace(keyword)))
	}
	for _, f := range textFields {
		parts = append(parts, fmt.Sprintf("@%s:(%s)", f, queryEscaper.Replace(keyword)))
	}

	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

func parseSearchResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, total)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:    key,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
)
