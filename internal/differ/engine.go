// Package differ compares two saved verification results so reviewers can
// audit how a policy's formal standing changed between runs.
package differ

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wI2L/jsondiff"

	"github.com/govproof/govproof/internal/models"
)

// ResultDiff is one translated difference between two verification results.
type ResultDiff struct {
	Path        string        `json:"path"`
	Translation string        `json:"translation"`
	Severity    SeverityLevel `json:"severity"`
}

// DiffResult is the complete comparison.
type DiffResult struct {
	HasChanges bool           `json:"has_changes"`
	Patches    jsondiff.Patch `json:"patches"`
	Diffs      []ResultDiff   `json:"diffs"`
}

// CompareFiles loads two verification-result JSON files and compares them.
func CompareFiles(beforePath, afterPath string) (*DiffResult, error) {
	before, err := loadResult(beforePath)
	if err != nil {
		return nil, err
	}
	after, err := loadResult(afterPath)
	if err != nil {
		return nil, err
	}
	return Compare(before, after)
}

// Compare produces JSON patches between the two results plus human-readable
// translations with severities.
func Compare(before, after *models.VerificationResult) (*DiffResult, error) {
	patches, err := jsondiff.Compare(before, after)
	if err != nil {
		return nil, fmt.Errorf("compare verification results: %w", err)
	}

	res := &DiffResult{
		HasChanges: len(patches) > 0,
		Patches:    patches,
	}
	seen := make(map[string]bool)
	for _, op := range patches {
		translation := translateOperation(op)
		if translation == "" || seen[translation] {
			continue
		}
		seen[translation] = true
		res.Diffs = append(res.Diffs, ResultDiff{
			Path:        op.Path,
			Translation: translation,
			Severity:    GetSeverity(op.Path, translation),
		})
	}
	return res, nil
}

func loadResult(path string) (*models.VerificationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load verification result: %w", err)
	}
	var result models.VerificationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse verification result %s: %w", path, err)
	}
	return &result, nil
}
