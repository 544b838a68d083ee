// Package mcpadapter exposes the search pipeline as MCP tools so an
// external agent can compile and run patent searches over stdio.
package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/patentscout/patentscout/internal/models"
	"github.com/patentscout/patentscout/internal/pipeline"
	"github.com/patentscout/patentscout/internal/query"
)

// PatentSearchInput is the MCP tool input schema for a one-shot search.
type PatentSearchInput struct {
	IntentText    string     `json:"intent_text" jsonschema:"investigation intent the results are ranked against"`
	IPCCodes      []string   `json:"ipc_codes,omitempty" jsonschema:"IPC code prefixes, OR'd together"`
	KeywordGroups [][]string `json:"keyword_groups,omitempty" jsonschema:"keyword groups: OR within a group, AND across groups"`
	DateFrom      string     `json:"publication_date_from,omitempty" jsonschema:"publication date lower bound, YYYYMMDD"`
	DateTo        string     `json:"publication_date_to,omitempty" jsonschema:"publication date upper bound, YYYYMMDD"`
	Limit         int        `json:"limit,omitempty" jsonschema:"maximum number of rows (default: 100)"`
}

// PatentSearchOutput carries the ranked documents.
type PatentSearchOutput struct {
	Documents []models.CandidateDocument `json:"documents"`
}

// CompileQueryInput is the MCP tool input schema for predicate inspection.
type CompileQueryInput struct {
	IPCCodes      []string   `json:"ipc_codes,omitempty" jsonschema:"IPC code prefixes, OR'd together"`
	KeywordGroups [][]string `json:"keyword_groups,omitempty" jsonschema:"keyword groups: OR within a group, AND across groups"`
	DateFrom      string     `json:"publication_date_from,omitempty" jsonschema:"publication date lower bound, YYYYMMDD"`
	DateTo        string     `json:"publication_date_to,omitempty" jsonschema:"publication date upper bound, YYYYMMDD"`
	Limit         int        `json:"limit,omitempty" jsonschema:"maximum number of rows (default: 100)"`
}

// ParamView is one bound parameter of a compiled predicate.
type ParamView struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// CompileQueryOutput is the compiled predicate template with its
// parameters in bind order.
type CompileQueryOutput struct {
	Predicate  string      `json:"predicate"`
	Parameters []ParamView `json:"parameters"`
}

// NewPatentSearchHandler returns a tool handler that compiles the
// query, retrieves candidates, and ranks them against the intent text.
// Pass the returned function to mcp.AddTool.
func NewPatentSearchHandler(retriever pipeline.Retriever, ranker pipeline.Ranker, weights models.SimilarityWeights) func(context.Context, *mcp.CallToolRequest, PatentSearchInput) (*mcp.CallToolResult, PatentSearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PatentSearchInput) (*mcp.CallToolResult, PatentSearchOutput, error) {
		template, params, err := query.Compile(toStructuredQuery(input.IPCCodes, input.KeywordGroups, input.DateFrom, input.DateTo, input.Limit))
		if err != nil {
			return nil, PatentSearchOutput{}, err
		}

		docs, err := retriever.Search(ctx, template, params)
		if err != nil {
			return nil, PatentSearchOutput{}, err
		}

		if input.IntentText == "" {
			return nil, PatentSearchOutput{Documents: docs}, nil
		}

		ranked, err := ranker.Rank(ctx, input.IntentText, docs, weights)
		if err != nil {
			// Degrade to the unscored pass-through the ranker returns.
			return nil, PatentSearchOutput{Documents: ranked}, nil
		}
		return nil, PatentSearchOutput{Documents: ranked}, nil
	}
}

// NewCompileQueryHandler returns a tool handler that compiles a
// structured query without executing it.
// Pass the returned function to mcp.AddTool.
func NewCompileQueryHandler() func(context.Context, *mcp.CallToolRequest, CompileQueryInput) (*mcp.CallToolResult, CompileQueryOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CompileQueryInput) (*mcp.CallToolResult, CompileQueryOutput, error) {
		template, params, err := query.Compile(toStructuredQuery(input.IPCCodes, input.KeywordGroups, input.DateFrom, input.DateTo, input.Limit))
		if err != nil {
			return nil, CompileQueryOutput{}, err
		}

		out := CompileQueryOutput{
			Predicate:  template,
			Parameters: make([]ParamView, 0, len(params)),
		}
		for _, p := range params {
			out.Parameters = append(out.Parameters, ParamView{
				Name:  p.Name,
				Type:  string(p.Type),
				Value: p.Value,
			})
		}
		return nil, out, nil
	}
}

func toStructuredQuery(ipcCodes []string, groups [][]string, dateFrom, dateTo string, limit int) models.StructuredQuery {
	return models.StructuredQuery{
		IPCCodes:      ipcCodes,
		KeywordGroups: groups,
		DateFrom:      dateFrom,
		DateTo:        dateTo,
		Limit:         limit,
	}
}
