package orggraph

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/orgchart/internal/ids"
)

// testRouter mounts the API over a pre-built graph, skipping file I/O.
func testRouter(t *testing.T, g *Graph, onReload ReloadHook) *chi.Mux {
	t.Helper()
	svc := &Service{graph: g}
	r := chi.NewRouter()
	RegisterRoutes(r, svc, onReload)
	return r
}

func doRequest(t *testing.T, r http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func TestRoutesGetTeam(t *testing.T) {
	r := testRouter(t, Normalize(consolidationExport()), nil)

	rec := doRequest(t, r, http.MethodGet, "/api/teams/UB&0")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var team Team
	decodeBody(t, rec, &team)
	if team.Name != "Umbrella" {
		t.Errorf("team name = %q, want Umbrella", team.Name)
	}

	if rec := doRequest(t, r, http.MethodGet, "/api/teams/UZ&9"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown team status = %d, want 404", rec.Code)
	}
	if rec := doRequest(t, r, http.MethodGet, "/api/teams/garbage"); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed team id status = %d, want 400", rec.Code)
	}
}

func TestRoutesHierarchy(t *testing.T) {
	r := testRouter(t, Normalize(consolidationExport()), nil)

	rec := doRequest(t, r, http.MethodGet, "/api/channels/C9/hierarchy")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var entries []HierarchyEntry
	decodeBody(t, rec, &entries)
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	if entries[0].Team.ID != ids.NewTeamID("UB", 0) || !entries[0].Parent.IsZero() {
		t.Errorf("root entry = %+v", entries[0])
	}

	// Channels without org data answer with an empty array, not null.
	rec = doRequest(t, r, http.MethodGet, "/api/channels/C0/hierarchy")
	if rec.Code != http.StatusOK {
		t.Fatalf("empty channel status = %d", rec.Code)
	}
	decodeBody(t, rec, &entries)
	if entries == nil || len(entries) != 0 {
		t.Errorf("empty channel body = %s", rec.Body.String())
	}
}

func TestRoutesTeamUsersRecursive(t *testing.T) {
	r := testRouter(t, Normalize(consolidationExport()), nil)

	rec := doRequest(t, r, http.MethodGet, "/api/teams/UC&0/users")
	var users []*User
	decodeBody(t, rec, &users)
	if len(users) != 1 || users[0].ID != "UM4" {
		t.Errorf("direct users = %v", users)
	}

	rec = doRequest(t, r, http.MethodGet, "/api/teams/UC&0/users?recursive=1")
	decodeBody(t, rec, &users)
	if len(users) != 2 || users[0].ID != "UM4" || users[1].ID != "UM5" {
		t.Errorf("recursive users = %v", users)
	}
}

func TestRoutesTeamRoot(t *testing.T) {
	r := testRouter(t, Normalize(consolidationExport()), nil)

	rec := doRequest(t, r, http.MethodGet, "/api/teams/UD&0/root")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var root Team
	decodeBody(t, rec, &root)
	if root.ID != ids.NewTeamID("UB", 0) {
		t.Errorf("root = %v, want UB&0", root.ID)
	}
}

func TestRoutesTeamRootCycle(t *testing.T) {
	r := testRouter(t, Normalize(cycleExport()), nil)

	rec := doRequest(t, r, http.MethodGet, "/api/teams/UX&0/root")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("cyclic chain status = %d, want 422", rec.Code)
	}
}

func TestRoutesTeamRootUndiscoverable(t *testing.T) {
	export := consolidationExport()
	rec := export["UA"]
	team := rec.LedTeams["0"]
	team.Settings.PrimaryTeam = ids.TeamID{}
	rec.LedTeams["0"] = team
	export["UA"] = rec

	r := testRouter(t, Normalize(export), nil)
	if rec := doRequest(t, r, http.MethodGet, "/api/teams/UA&0/root"); rec.Code != http.StatusNotFound {
		t.Errorf("unanchored team root status = %d, want 404", rec.Code)
	}
}

func TestRoutesVisibilityModes(t *testing.T) {
	r := testRouter(t, Normalize(consolidationExport()), nil)

	rec := doRequest(t, r, http.MethodGet, "/api/users/US/visibility")
	var users []*User
	decodeBody(t, rec, &users)
	if len(users) != 3 {
		t.Errorf("default (privileged) visibility = %d users, want 3", len(users))
	}

	rec = doRequest(t, r, http.MethodGet, "/api/users/US/visibility?mode=secondary")
	decodeBody(t, rec, &users)
	if len(users) != 1 || users[0].ID != "UM5" {
		t.Errorf("secondary visibility = %v", users)
	}

	if rec := doRequest(t, r, http.MethodGet, "/api/users/US/visibility?mode=bogus"); rec.Code != http.StatusBadRequest {
		t.Errorf("bogus mode status = %d, want 400", rec.Code)
	}
}

func TestRoutesDiagnosticsEmptyArray(t *testing.T) {
	r := testRouter(t, Normalize(consolidationExport()), nil)

	rec := doRequest(t, r, http.MethodGet, "/api/diagnostics")
	if body := rec.Body.String(); body == "null\n" {
		t.Error("diagnostics serialized as null instead of []")
	}
	var diags []Diagnostic
	decodeBody(t, rec, &diags)
	if len(diags) != 0 {
		t.Errorf("diagnostics = %v, want none", diags)
	}
}

func TestRoutesReload(t *testing.T) {
	dir := t.TempDir()
	exportPath := writeFixture(t, dir, "teams.json", exportFixture)

	svc := NewService(exportPath, "")
	var hooked *Graph
	r := chi.NewRouter()
	RegisterRoutes(r, svc, func(g *Graph) { hooked = g })

	rec := doRequest(t, r, http.MethodPost, "/api/reload")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var version VersionInfo
	decodeBody(t, rec, &version)
	if version.Teams != 1 || version.Users != 2 {
		t.Errorf("version = %+v", version)
	}
	if hooked == nil || hooked != svc.Graph() {
		t.Error("reload hook did not receive the new graph")
	}
}

func TestRoutesReloadFailure(t *testing.T) {
	svc := NewService("no-such-export.json", "")
	r := chi.NewRouter()
	called := false
	RegisterRoutes(r, svc, func(*Graph) { called = true })

	rec := doRequest(t, r, http.MethodPost, "/api/reload")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if called {
		t.Error("reload hook ran for a failed reload")
	}
}
