package query

import "strings"

// ParamType is the declared type of a bound parameter.
type ParamType string

const (
	ParamString ParamType = "STRING"
	ParamInt64  ParamType = "INT64"
)

// Param is one named bind value of a compiled predicate. Parameters
// are ordered by encounter during compilation; a name may be
// referenced more than once inside the template.
type Param struct {
	Name  string
	Type  ParamType
	Value any
}

// Expr is one node of the predicate tree. The tree captures the
// boolean structure of a search condition independently of how a
// retrieval backend renders the text-match operator.
type Expr interface {
	// SQL renders the node as parameterized predicate text with
	// @name placeholders.
	SQL() string
}

// And joins child expressions with AND.
type And struct {
	Exprs []Expr
}

// Or joins child expressions with OR.
type Or struct {
	Exprs []Expr
}

// Between is an inclusive range condition on a single column.
type Between struct {
	Field string
	Lo    string // param name
	Hi    string // param name
}

// PrefixMatch is a LIKE condition whose bound value ends in '%'.
// Used for IPC code prefixes.
type PrefixMatch struct {
	Field string
	Param string
}

// TextMatch is a full-record keyword match over the three text
// fields (title, abstract, claims). It renders as the neutral
// SEARCH(@param) form; each retrieval executor substitutes the
// operator its backing store supports.
type TextMatch struct {
	Param string
}

func (a And) SQL() string {
	parts := make([]string, 0, len(a.Exprs))
	for _, e := range a.Exprs {
		parts = append(parts, paren(e))
	}
	return strings.Join(parts, " AND ")
}

func (o Or) SQL() string {
	parts := make([]string, 0, len(o.Exprs))
	for _, e := range o.Exprs {
		parts = append(parts, paren(e))
	}
	return strings.Join(parts, " OR ")
}

func (b Between) SQL() string {
	return b.Field + " BETWEEN @" + b.Lo + " AND @" + b.Hi
}

func (p PrefixMatch) SQL() string {
	return p.Field + " LIKE @" + p.Param
}

func (t TextMatch) SQL() string {
	return "SEARCH(@" + t.Param + ")"
}

// paren wraps composite children so that nested boolean logic keeps
// its grouping when rendered as flat text.
func paren(e Expr) string {
	switch e.(type) {
	case And, Or:
		return "(" + e.SQL() + ")"
	default:
		return e.SQL()
	}
}
