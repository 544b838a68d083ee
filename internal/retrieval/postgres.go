package retrieval

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/patentscout/patentscout/internal/models"
	"github.com/patentscout/patentscout/internal/query"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// PostgresRetriever runs compiled predicates against a `patents`
// table. Text matching renders as ILIKE substring match; IPC prefix
// clauses probe the ipc_codes array.
type PostgresRetriever struct {
	Pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func NewPostgres(ctx context.Context, cfg Config, logger *zerolog.Logger) (*PostgresRetriever, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &PostgresRetriever{
		Pool:   pool,
		logger: logger,
	}, nil
}

func (r *PostgresRetriever) Ping(ctx context.Context) error {
	return r.Pool.Ping(ctx)
}

func (r *PostgresRetriever) Close() {
	r.Pool.Close()
}

const selectClause = `SELECT publication_number,
       COALESCE(title_ja, title_en, '') AS title,
       COALESCE(abstract_ja, abstract_en, '') AS abstract,
       COALESCE(claims_ja, claims_en, '') AS claims,
       COALESCE(assignee_names, '{}') AS assignee_names,
       publication_date,
       COALESCE(ipc_codes, '{}') AS ipc_codes
FROM patents AS p
WHERE `

func (r *PostgresRetriever) Search(ctx context.Context, template string, params []query.Param) ([]models.CandidateDocument, error) {
	sql, args, err := RenderPredicate(template, params)
	if err != nil {
		return nil, err
	}
	sql = selectClause + sql

	r.logger.Debug().Str("sql", sql).Int("params", len(args)).Msg("executing patent search")

	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("patent search query failed: %w", err)
	}
	defer rows.Close()

	var docs []models.CandidateDocument
	for rows.Next() {
		var doc models.CandidateDocument
		var pubDate int64
		if err := rows.Scan(
			&doc.PublicationNumber,
			&doc.Title,
			&doc.Abstract,
			&doc.Claims,
			&doc.AssigneeNames,
			&pubDate,
			&doc.IPCCodes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan patent row: %w", err)
		}
		doc.PublicationDate = strconv.FormatInt(pubDate, 10)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("patent search iteration failed: %w", err)
	}

	r.logger.Info().Int("documents", len(docs)).Msg("patent search complete")
	return docs, nil
}

var (
	paramRef  = regexp.MustCompile(`@([a-zA-Z_][a-zA-Z0-9_]*)`)
	searchRef = regexp.MustCompile(`SEARCH\(@([a-zA-Z_][a-zA-Z0-9_]*)\)`)
	ipcRef    = regexp.MustCompile(`ipc_code LIKE @([a-zA-Z_][a-zA-Z0-9_]*)`)
)

// RenderPredicate translates the dialect-neutral predicate template
// into Postgres SQL: the SEARCH() text match expands to an ILIKE
// probe over the three text fields, IPC prefix clauses probe the
// ipc_codes array, and @name references become positional $n
// placeholders in parameter order. A name may be referenced more than
// once; the args keep the compiler's ordering.
func RenderPredicate(template string, params []query.Param) (string, []any, error) {
	position := make(map[string]int, len(params))
	args := make([]any, len(params))
	for i, p := range params {
		if _, dup := position[p.Name]; dup {
			return "", nil, fmt.Errorf("duplicate parameter name %q", p.Name)
		}
		position[p.Name] = i + 1
		args[i] = p.Value
	}

	sql := template

	// Keyword text match: substring ILIKE over the localized fields.
	sql = searchRef.ReplaceAllString(sql,
		`(p.title_ja ILIKE '%' || @$1 || '%' OR p.title_en ILIKE '%' || @$1 || '%' OR p.abstract_ja ILIKE '%' || @$1 || '%' OR p.abstract_en ILIKE '%' || @$1 || '%' OR p.claims_ja ILIKE '%' || @$1 || '%' OR p.claims_en ILIKE '%' || @$1 || '%')`)

	// IPC prefix match probes the code array.
	sql = ipcRef.ReplaceAllString(sql,
		`EXISTS (SELECT 1 FROM unnest(p.ipc_codes) AS ipc_code WHERE ipc_code LIKE @$1)`)

	var missing string
	sql = paramRef.ReplaceAllStringFunc(sql, func(ref string) string {
		name := ref[1:]
		n, ok := position[name]
		if !ok {
			missing = name
			return ref
		}
		return "$" + strconv.Itoa(n)
	})
	if missing != "" {
		return "", nil, fmt.Errorf("template references unbound parameter %q", missing)
	}

	if strings.Contains(sql, "@") {
		return "", nil, fmt.Errorf("unresolved parameter reference in rendered predicate")
	}

	return sql, args, nil
}
