package differ

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/govproof/govproof/internal/models"
)

func sampleResult() *models.VerificationResult {
	return &models.VerificationResult{
		PolicyID:           "p",
		VerificationStatus: models.StatusVerified,
		Outcome:            models.OutcomeUnsat,
		Compliance: &models.ComplianceReport{
			PerConstraint:    map[string]bool{"principle_privacy": true},
			ComplianceScore:  1.0,
			OverallCompliant: true,
		},
		Summary:     models.CompilationSummary{Variables: 2, Constraints: 3},
		SolverUsed:  models.SolverSAT,
		GeneratedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCompare_NoChanges(t *testing.T) {
	res, err := Compare(sampleResult(), sampleResult())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if res.HasChanges {
		t.Errorf("identical results reported as changed: %+v", res)
	}
}

func TestCompare_VerdictFlipCritical(t *testing.T) {
	after := sampleResult()
	after.VerificationStatus = models.StatusReview
	after.Outcome = models.OutcomeSat

	res, err := Compare(sampleResult(), after)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if !res.HasChanges {
		t.Fatalf("verdict flip not detected")
	}

	foundStatus := false
	for _, d := range res.Diffs {
		if d.Path == "/verification_status" {
			foundStatus = true
			if d.Severity != SeverityCritical {
				t.Errorf("status flip severity = %v, want critical", d.Severity)
			}
			if d.Translation != "Verification status changed to review." {
				t.Errorf("translation = %q", d.Translation)
			}
		}
	}
	if !foundStatus {
		t.Errorf("no diff for /verification_status: %+v", res.Diffs)
	}
}

func TestCompare_ScoreDriftModerate(t *testing.T) {
	after := sampleResult()
	after.Compliance.ComplianceScore = 0.5
	after.Compliance.OverallCompliant = false

	res, err := Compare(sampleResult(), after)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	var scoreSeverity, compliantSeverity SeverityLevel = -1, -1
	for _, d := range res.Diffs {
		switch d.Path {
		case "/compliance/compliance_score":
			scoreSeverity = d.Severity
		case "/compliance/overall_compliant":
			compliantSeverity = d.Severity
		}
	}
	if scoreSeverity != SeverityModerate {
		t.Errorf("score drift severity = %v, want moderate", scoreSeverity)
	}
	if compliantSeverity != SeverityCritical {
		t.Errorf("overall-compliant flip severity = %v, want critical", compliantSeverity)
	}
}

func TestCompare_TimestampIgnored(t *testing.T) {
	after := sampleResult()
	after.GeneratedAt = after.GeneratedAt.Add(time.Hour)

	res, err := Compare(sampleResult(), after)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	for _, d := range res.Diffs {
		if d.Path == "/generated_at" {
			t.Errorf("timestamp change surfaced as a finding")
		}
	}
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, r *models.VerificationResult) string {
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	after := sampleResult()
	after.SolverUsed = models.SolverFallback
	before := write("before.json", sampleResult())
	changed := write("after.json", after)

	res, err := CompareFiles(before, changed)
	if err != nil {
		t.Fatalf("CompareFiles failed: %v", err)
	}
	if !res.HasChanges {
		t.Errorf("solver change not detected")
	}

	if _, err := CompareFiles(before, filepath.Join(dir, "missing.json")); err == nil {
		t.Errorf("missing file not reported")
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		level SeverityLevel
		want  string
	}{
		{SeverityCritical, "critical"},
		{SeverityModerate, "moderate"},
		{SeverityInfo, "info"},
		{SeverityLevel(9), "unknown"},
	}
	for _, tt := range tests {
		if got := SeverityString(tt.level); got != tt.want {
			t.Errorf("SeverityString(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
