package orggraph

import (
	"path/filepath"
	"testing"

	"github.com/ziadkadry99/orgchart/internal/ids"
	"github.com/ziadkadry99/orgchart/internal/snapshot"
)

// sampleGraph loads the sharded export under testdata/sample_export.
func sampleGraph(t *testing.T) *Graph {
	t.Helper()
	pattern := filepath.Join("..", "..", "testdata", "sample_export", "export-*.json")
	export, err := snapshot.LoadExportGlob(pattern)
	if err != nil {
		t.Fatalf("loading sample export: %v", err)
	}
	return Normalize(export)
}

func TestSampleExport(t *testing.T) {
	g := sampleGraph(t)

	if len(g.Teams) != 3 {
		t.Errorf("got %d teams, want 3", len(g.Teams))
	}
	if len(g.Users) != 7 {
		t.Errorf("got %d users, want 7", len(g.Users))
	}
	if len(g.Diagnostics) != 0 {
		t.Errorf("diagnostics = %v, want none", g.Diagnostics)
	}

	backend := ids.NewTeamID("U02BBB", 0)
	root, err := g.RootOf(backend)
	if err != nil {
		t.Fatalf("RootOf(backend): %v", err)
	}
	if root == nil || root.Name != "Engineering" {
		t.Errorf("backend root = %v, want Engineering", root)
	}

	entries := g.HierarchyForChannel("C0ENG")
	if len(entries) != 3 || entries[0].Team.Name != "Engineering" {
		t.Errorf("hierarchy = %v", entries)
	}

	// Marcus holds a secondary grant on Backend, which cascades up to
	// Engineering and makes its members visible.
	visible := g.PrivilegedView("U03CCC")
	if len(visible) != 3 {
		t.Errorf("privileged view = %d users, want the 3 Engineering members", len(visible))
	}
}
