package query

import "testing"

func TestExpr_Rendering(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{
			name: "between",
			expr: Between{Field: "publication_date", Lo: "pub_from", Hi: "pub_to"},
			want: "publication_date BETWEEN @pub_from AND @pub_to",
		},
		{
			name: "prefix match",
			expr: PrefixMatch{Field: "ipc_code", Param: "param_0"},
			want: "ipc_code LIKE @param_0",
		},
		{
			name: "text match",
			expr: TextMatch{Param: "param_0"},
			want: "SEARCH(@param_0)",
		},
		{
			name: "or of leaves stays flat",
			expr: Or{Exprs: []Expr{TextMatch{Param: "a"}, TextMatch{Param: "b"}}},
			want: "SEARCH(@a) OR SEARCH(@b)",
		},
		{
			name: "nested composites are bracketed",
			expr: And{Exprs: []Expr{
				Or{Exprs: []Expr{TextMatch{Param: "a"}, TextMatch{Param: "b"}}},
				Or{Exprs: []Expr{TextMatch{Param: "c"}}},
			}},
			want: "(SEARCH(@a) OR SEARCH(@b)) AND (SEARCH(@c))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.SQL(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
