package reactivedebug

import (
	"strings"
	"testing"

	"github.com/vango-dev/reactorctl/pkg/reactive"
)

func TestCaptureReflectsNodeCreation(t *testing.T) {
	before := Capture()

	reactive.NewSignal(0)

	after := Capture()
	if after.TotalNodes <= before.TotalNodes {
		t.Fatalf("expected TotalNodes to grow, got before=%d after=%d", before.TotalNodes, after.TotalNodes)
	}
}

func TestCaptureReflectsRootScopes(t *testing.T) {
	before := Capture()

	dispose := reactive.Root(func() {})
	dispose()

	after := Capture()
	if after.RootScopes != before.RootScopes+1 {
		t.Fatalf("expected RootScopes to grow by 1, got before=%d after=%d", before.RootScopes, after.RootScopes)
	}
}

func TestSnapshotHumanized(t *testing.T) {
	snap := Snapshot{TotalNodes: 1234, RootScopes: 5}
	got := snap.Humanized()
	if !strings.Contains(got, "1,234") {
		t.Fatalf("expected humanized total to contain comma-grouped count, got %q", got)
	}
	if !strings.Contains(got, "5 root scopes") {
		t.Fatalf("expected humanized string to mention root scope count, got %q", got)
	}
}

func TestShortHashIsStableAndEightHex(t *testing.T) {
	a := ShortHash(42)
	b := ShortHash(42)
	if a != b {
		t.Fatalf("expected ShortHash to be deterministic, got %q and %q", a, b)
	}
	if len(a) != 8 {
		t.Fatalf("expected 8 hex characters, got %q (len %d)", a, len(a))
	}
}

func TestShortHashDiffersAcrossIDs(t *testing.T) {
	if ShortHash(1) == ShortHash(2) {
		t.Fatalf("expected distinct node IDs to hash to distinct short hashes")
	}
}
