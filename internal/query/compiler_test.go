package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/patentscout/patentscout/internal/models"
)

func TestCompile_DateOnly(t *testing.T) {
	q := models.StructuredQuery{
		DateFrom: "20100101",
		DateTo:   "20250101",
		Limit:    5,
	}

	template, params, err := Compile(q)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if !strings.Contains(template, "publication_date BETWEEN @pub_from AND @pub_to") {
		t.Errorf("expected date condition, got: %s", template)
	}
	if strings.Contains(template, "OR") || strings.Contains(template, "SEARCH") {
		t.Errorf("expected no keyword/IPC clauses, got: %s", template)
	}
	if !strings.Contains(template, "LIMIT @limit") {
		t.Errorf("expected bound row cap, got: %s", template)
	}

	if len(params) != 3 {
		t.Fatalf("expected 3 params, got %d", len(params))
	}
	if params[0].Name != "pub_from" || params[0].Value != int64(20100101) {
		t.Errorf("unexpected pub_from param: %+v", params[0])
	}
	if params[1].Name != "pub_to" || params[1].Value != int64(20250101) {
		t.Errorf("unexpected pub_to param: %+v", params[1])
	}
	last := params[len(params)-1]
	if last.Name != "limit" || last.Type != ParamInt64 || last.Value != int64(5) {
		t.Errorf("unexpected limit param: %+v", last)
	}
}

func TestCompile_IPCCodes(t *testing.T) {
	q := models.StructuredQuery{
		IPCCodes: []string{"G06F", "G06N"},
	}

	template, params, err := Compile(q)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if count := strings.Count(template, "ipc_code LIKE @"); count != 2 {
		t.Errorf("expected 2 prefix-match clauses, got %d in: %s", count, template)
	}
	if !strings.Contains(template, "ipc_code LIKE @param_0 OR ipc_code LIKE @param_1") {
		t.Errorf("expected OR-joined IPC clauses, got: %s", template)
	}

	for _, name := range []string{"param_0", "param_1"} {
		p := findParam(t, params, name)
		value, ok := p.Value.(string)
		if !ok || !strings.HasSuffix(value, "%") {
			t.Errorf("expected prefix value ending in %%, got %v", p.Value)
		}
	}
	if findParam(t, params, "param_0").Value != "G06F%" {
		t.Errorf("unexpected param_0 value: %v", findParam(t, params, "param_0").Value)
	}
}

func TestCompile_KeywordGroups(t *testing.T) {
	q := models.StructuredQuery{
		KeywordGroups: [][]string{{"ai", "ml"}, {"patent"}},
	}

	template, params, err := Compile(q)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	want := "(SEARCH(@param_0) OR SEARCH(@param_1)) AND (SEARCH(@param_2))"
	if !strings.Contains(template, want) {
		t.Errorf("expected AND-of-OR groups %q, got: %s", want, template)
	}

	if findParam(t, params, "param_0").Value != "ai" {
		t.Errorf("unexpected param_0: %v", findParam(t, params, "param_0").Value)
	}
	if findParam(t, params, "param_2").Value != "patent" {
		t.Errorf("unexpected param_2: %v", findParam(t, params, "param_2").Value)
	}
}

func TestCompile_SwappedGroupOrder_SameSemantics(t *testing.T) {
	a := models.StructuredQuery{KeywordGroups: [][]string{{"ai", "ml"}, {"patent"}}}
	b := models.StructuredQuery{KeywordGroups: [][]string{{"patent"}, {"ai", "ml"}}}

	templateA, _, err := Compile(a)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	templateB, _, err := Compile(b)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	// Parameter names shift with group order but the boolean shape is
	// the same: two groups joined by AND.
	if strings.Count(templateA, ") AND (") != strings.Count(templateB, ") AND (") {
		t.Errorf("group order changed boolean shape:\n%s\n%s", templateA, templateB)
	}
}

func TestCompile_IPCAndKeywords_ORedTogether(t *testing.T) {
	q := models.StructuredQuery{
		IPCCodes:      []string{"G06F"},
		KeywordGroups: [][]string{{"ai"}},
	}

	template, _, err := Compile(q)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	want := "((ipc_code LIKE @param_0) OR ((SEARCH(@param_1))))"
	if !strings.Contains(template, want) {
		t.Errorf("expected bracketed OR of IPC and keyword clauses %q, got: %s", want, template)
	}
}

func TestCompile_Deterministic(t *testing.T) {
	q := models.StructuredQuery{
		IPCCodes:      []string{"G06F", "H04L"},
		KeywordGroups: [][]string{{"ai", "ml"}, {"patent"}},
		DateFrom:      "2015-01-01",
		DateTo:        "2024-12-31",
		Limit:         50,
	}

	template1, params1, err := Compile(q)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	template2, params2, err := Compile(q)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if template1 != template2 {
		t.Errorf("templates differ:\n%s\n%s", template1, template2)
	}
	if len(params1) != len(params2) {
		t.Fatalf("param counts differ: %d vs %d", len(params1), len(params2))
	}
	for i := range params1 {
		if params1[i] != params2[i] {
			t.Errorf("param %d differs: %+v vs %+v", i, params1[i], params2[i])
		}
	}
}

func TestCompile_DateSeparatorsStripped(t *testing.T) {
	q := models.StructuredQuery{DateFrom: "2015-01-01", DateTo: "2024/12/31"}

	_, params, err := Compile(q)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if findParam(t, params, "pub_from").Value != int64(20150101) {
		t.Errorf("unexpected pub_from: %v", findParam(t, params, "pub_from").Value)
	}
	if findParam(t, params, "pub_to").Value != int64(20241231) {
		t.Errorf("unexpected pub_to: %v", findParam(t, params, "pub_to").Value)
	}
}

func TestCompile_EmptyKeywordsAndGroupsSkipped(t *testing.T) {
	q := models.StructuredQuery{
		KeywordGroups: [][]string{{"ai", ""}, {}, {"  "}},
	}

	template, params, err := Compile(q)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if count := strings.Count(template, "SEARCH(@"); count != 1 {
		t.Errorf("expected 1 keyword clause, got %d in: %s", count, template)
	}
	// pub_from, pub_to, param_0, limit
	if len(params) != 4 {
		t.Errorf("expected 4 params, got %d: %+v", len(params), params)
	}
}

func TestCompile_DefaultsApplied(t *testing.T) {
	template, params, err := Compile(models.StructuredQuery{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if !strings.Contains(template, "BETWEEN @pub_from AND @pub_to") {
		t.Errorf("date condition is mandatory, got: %s", template)
	}
	if findParam(t, params, "pub_from").Value != int64(20100101) {
		t.Errorf("expected default pub_from, got %v", findParam(t, params, "pub_from").Value)
	}
	if findParam(t, params, "limit").Value != int64(models.DefaultLimit) {
		t.Errorf("expected default limit, got %v", findParam(t, params, "limit").Value)
	}
}

func TestCompile_NegativeLimit(t *testing.T) {
	_, _, err := Compile(models.StructuredQuery{Limit: -1})
	if err == nil {
		t.Fatal("expected validation error for negative limit")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("expected *ValidationError, got %T", err)
	}
}

func TestCompile_MalformedDate(t *testing.T) {
	_, _, err := Compile(models.StructuredQuery{DateFrom: "January 2020"})
	if err == nil {
		t.Fatal("expected validation error for malformed date")
	}
}

func findParam(t *testing.T, params []Param, name string) Param {
	t.Helper()
	for _, p := range params {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("param %s not found in %+v", name, params)
	return Param{}
}
