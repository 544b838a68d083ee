// Package query compiles a structured search condition into a
// parameterized predicate template. Compilation is deterministic and
// side-effect free: every user-supplied value becomes a named
// parameter, never interpolated into the template text.
package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/patentscout/patentscout/internal/models"
)

// DefaultDateFrom is the earliest supported publication date.
const DefaultDateFrom = "20100101"

// ValidationError reports a malformed StructuredQuery. It is the only
// condition that blocks compilation; it must surface before any
// external call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid search query: %s %s", e.Field, e.Reason)
}

// Compile builds the predicate template and its ordered parameter
// list from a structured query.
//
// Shape: the date range is mandatory; IPC prefix clauses are OR'd;
// keyword groups are AND-of-OR; when both IPC and keyword clauses
// exist they are OR'd together as one bracketed sub-expression. The
// row cap is always the final parameter and is never inlined.
// Compiling the same query twice yields byte-identical output.
func Compile(q models.StructuredQuery) (string, []Param, error) {
	limit := q.Limit
	if limit == 0 {
		limit = models.DefaultLimit
	}
	if limit < 0 {
		return "", nil, &ValidationError{Field: "limit", Reason: "must be positive"}
	}

	from, err := normalizeDate(q.DateFrom, DefaultDateFrom)
	if err != nil {
		return "", nil, &ValidationError{Field: "publication_date_from", Reason: err.Error()}
	}
	to, err := normalizeDate(q.DateTo, time.Now().Format("20060102"))
	if err != nil {
		return "", nil, &ValidationError{Field: "publication_date_to", Reason: err.Error()}
	}

	params := []Param{
		{Name: "pub_from", Type: ParamInt64, Value: from},
		{Name: "pub_to", Type: ParamInt64, Value: to},
	}
	conditions := []Expr{Between{Field: "publication_date", Lo: "pub_from", Hi: "pub_to"}}

	paramCounter := 0
	nextParam := func(value string) string {
		name := fmt.Sprintf("param_%d", paramCounter)
		paramCounter++
		params = append(params, Param{Name: name, Type: ParamString, Value: value})
		return name
	}

	var subParts []Expr

	// IPC prefixes, OR'd together.
	if len(q.IPCCodes) > 0 {
		ipcClauses := make([]Expr, 0, len(q.IPCCodes))
		for _, code := range q.IPCCodes {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			ipcClauses = append(ipcClauses, PrefixMatch{
				Field: "ipc_code",
				Param: nextParam(code + "%"),
			})
		}
		if len(ipcClauses) > 0 {
			subParts = append(subParts, Or{Exprs: ipcClauses})
		}
	}

	// Keyword groups: OR within a group, AND across groups.
	if len(q.KeywordGroups) > 0 {
		groupClauses := make([]Expr, 0, len(q.KeywordGroups))
		for _, group := range q.KeywordGroups {
			kwClauses := make([]Expr, 0, len(group))
			for _, kw := range group {
				kw = strings.TrimSpace(kw)
				if kw == "" {
					continue
				}
				kwClauses = append(kwClauses, TextMatch{Param: nextParam(kw)})
			}
			if len(kwClauses) > 0 {
				groupClauses = append(groupClauses, Or{Exprs: kwClauses})
			}
		}
		if len(groupClauses) > 0 {
			subParts = append(subParts, And{Exprs: groupClauses})
		}
	}

	if len(subParts) > 0 {
		conditions = append(conditions, Or{Exprs: subParts})
	}

	params = append(params, Param{Name: "limit", Type: ParamInt64, Value: int64(limit)})

	template := And{Exprs: conditions}.SQL() + "\nLIMIT @limit"
	return template, params, nil
}

// normalizeDate strips separators and returns the 8-digit date as an
// int64 suitable for an INT64 bind value. An empty input takes the
// provided default.
func normalizeDate(s, fallback string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		s = fallback
	}
	s = strings.NewReplacer("-", "", "/", "", ".", "").Replace(strings.TrimSpace(s))
	if len(s) != 8 {
		return 0, fmt.Errorf("expected YYYYMMDD, got %q", s)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expected numeric date, got %q", s)
	}
	return n, nil
}
