package domain

import "testing"

func TestDefaultScannerCandidatesNonEmpty(t *testing.T) {
	candidates := DefaultScannerCandidates()
	if len(candidates) == 0 {
		t.Fatal("expected at least one scanner candidate")
	}
	if candidates[0] != "clang-scan-deps" {
		t.Errorf("expected clang-scan-deps to be tried first, got %s", candidates[0])
	}
}

func TestDefaultBuildToolCandidatesIncludesNinja(t *testing.T) {
	candidates := DefaultBuildToolCandidates()
	found := false
	for _, c := range candidates {
		if c == "ninja" {
			found = true
		}
	}
	if !found {
		t.Error("expected ninja to be a build tool candidate")
	}
}

func TestHealthBucketThresholdsAreOrdered(t *testing.T) {
	if DefaultHealthExcellentMaxSparsity <= DefaultHealthGoodMaxSparsity {
		t.Error("excellent sparsity floor should be stricter (higher) than good")
	}
	if DefaultHealthGoodMaxSparsity <= DefaultHealthFairMaxSparsity {
		t.Error("good sparsity floor should be stricter (higher) than fair")
	}
	if DefaultHealthExcellentMaxCycles >= DefaultHealthGoodMaxCycles {
		t.Error("excellent cycle ceiling should be stricter than good")
	}
	if DefaultHealthGoodMaxCycles >= DefaultHealthFairMaxCycles {
		t.Error("good cycle ceiling should be stricter than fair")
	}
}

func TestDefaultThirdPartyPrefixesNonEmpty(t *testing.T) {
	if len(DefaultThirdPartyPrefixes()) == 0 {
		t.Error("expected at least one third-party prefix")
	}
}

func TestCurrentSnapshotSchemaVersionIsSet(t *testing.T) {
	if CurrentSnapshotSchemaVersion == "" {
		t.Error("expected a non-empty snapshot schema version")
	}
}
