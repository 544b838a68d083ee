package models

// Role identifies the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one entry of the append-only conversation history.
type ChatTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// StructuredQuery is the search condition object the agent extracts
// from the conversation. Keywords holds the flattened union of
// KeywordGroups; once groups are present, only the groups drive
// predicate construction.
type StructuredQuery struct {
	IPCCodes        []string   `json:"ipc_codes"`
	Keywords        []string   `json:"keywords"`
	KeywordGroups   [][]string `json:"keyword_groups"`
	MainKeywords    []string   `json:"main_keywords,omitempty"`
	RelatedKeywords []string   `json:"related_keywords,omitempty"`
	DateFrom        string     `json:"publication_date_from,omitempty"`
	DateTo          string     `json:"publication_date_to,omitempty"`
	CountryCodes    []string   `json:"country_codes,omitempty"`
	Assignees       []string   `json:"assignees,omitempty"`
	Limit           int        `json:"limit"`
}

// DefaultLimit is applied when a generated query carries no row cap.
const DefaultLimit = 100

// CandidateDocument is one retrieved patent publication. Text fields
// are already resolved to a single language (ja preferred, en
// fallback). The ranking engine enriches a copy with the Sim* fields
// and Score; retrieval output itself is never mutated.
type CandidateDocument struct {
	PublicationNumber string   `json:"publication_number"`
	Title             string   `json:"title"`
	Abstract          string   `json:"abstract"`
	Claims            string   `json:"claims"`
	AssigneeNames     []string `json:"assignee_names"`
	PublicationDate   string   `json:"publication_date"`
	IPCCodes          []string `json:"ipc_codes"`

	SimTitle    float64 `json:"sim_title,omitempty"`
	SimAbstract float64 `json:"sim_abstract,omitempty"`
	SimClaims   float64 `json:"sim_claims,omitempty"`
	Score       float64 `json:"score,omitempty"`
}

// SimilarityWeights weighs the three text fields when scoring a
// document against the investigation intent. Weights on disk are not
// required to sum to 1; normalization happens at scoring time.
type SimilarityWeights struct {
	Title    float64 `json:"title" yaml:"title"`
	Abstract float64 `json:"abstract" yaml:"abstract"`
	Claims   float64 `json:"claims" yaml:"claims"`
}

// DefaultWeights mirrors the shipped configs/weights.yaml.
func DefaultWeights() SimilarityWeights {
	return SimilarityWeights{Title: 0.4, Abstract: 0.4, Claims: 0.2}
}

// Sum returns the raw (pre-normalization) weight total.
func (w SimilarityWeights) Sum() float64 {
	return w.Title + w.Abstract + w.Claims
}
