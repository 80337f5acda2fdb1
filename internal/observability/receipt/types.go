// Package receipt provides stable evidence artifacts for audit/compliance.
package receipt

// ReceiptSchemaVersion current
const ReceiptSchemaVersion = "1.0"

// Receipt structure
type Receipt struct {
	SchemaVersion string               `json:"schema_version"`
	OpID          string               `json:"op_id"`
	TsStart       string               `json:"ts_start"`
	TsEnd         string               `json:"ts_end"`
	Command       string               `json:"command"`
	Args          []string             `json:"args"`
	ArgsRedacted  bool                 `json:"args_redacted,omitempty"`
	Result        Result               `json:"result"`
	Policy        *PolicyRef           `json:"policy,omitempty"`
	Principles    *PrinciplesRef       `json:"principles,omitempty"`
	Verification  *VerificationSummary `json:"verification,omitempty"`
	Entailment    *EntailmentSummary   `json:"entailment,omitempty"`
}

// Result status
type Result struct {
	Status string `json:"status"` // "success" or "fail"
	Error  string `json:"error,omitempty"`
}

// PolicyRef detail
type PolicyRef struct {
	ID     string `json:"id"`
	Path   string `json:"path,omitempty"`
	SHA256 string `json:"sha256,omitempty"`
}

// PrinciplesRef detail
type PrinciplesRef struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256,omitempty"`
}

// VerificationSummary detail
type VerificationSummary struct {
	Status            string  `json:"status"` // verified|review|inconclusive|error
	Outcome           string  `json:"outcome,omitempty"`
	ComplianceScore   float64 `json:"compliance_score"`
	VerificationScore float64 `json:"verification_score"`
	Constraints       int     `json:"constraints"`
	SolverUsed        string  `json:"solver_used,omitempty"`
	ResultFingerprint string  `json:"result_fingerprint,omitempty"`
}

// EntailmentSummary detail
type EntailmentSummary struct {
	Satisfiable   bool   `json:"satisfiable"`
	Unsatisfiable bool   `json:"unsatisfiable"`
	SolverUsed    string `json:"solver_used,omitempty"`
}
