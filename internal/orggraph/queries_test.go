package orggraph

import (
	"testing"

	"github.com/ziadkadry99/orgchart/internal/ids"
)

func userIDs(users []*User) []ids.UserID {
	out := make([]ids.UserID, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func assertUserIDs(t *testing.T, got []*User, want ...ids.UserID) {
	t.Helper()
	gotIDs := userIDs(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("users = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("users = %v, want %v", gotIDs, want)
		}
	}
}

func TestUsersOfTeamDeduplicates(t *testing.T) {
	g := Normalize(consolidationExport())

	// Deep lists UM5 twice in the raw export.
	assertUserIDs(t, g.UsersOfTeam(ids.NewTeamID("UD", 0)), "UM5")
}

func TestUsersOfTeamUnknown(t *testing.T) {
	g := Normalize(consolidationExport())

	if got := g.UsersOfTeam(ids.NewTeamID("UZ", 9)); len(got) != 0 {
		t.Errorf("users = %v, want none", userIDs(got))
	}
}

func TestUsersOfTeamsUnion(t *testing.T) {
	g := Normalize(consolidationExport())

	// UM2 belongs to both teams; first-seen order wins.
	got := g.UsersOfTeams([]ids.TeamID{
		ids.NewTeamID("UA", 0),
		ids.NewTeamID("UB", 0),
	})
	assertUserIDs(t, got, "UM2", "UM3", "UM1")
}

func TestUsersOfChannel(t *testing.T) {
	g := Normalize(consolidationExport())

	assertUserIDs(t, g.UsersOfChannel("C9"), "UM2", "UM3", "UM1", "UM4", "UM5")
}

func TestDirectReports(t *testing.T) {
	g := Normalize(consolidationExport())

	assertUserIDs(t, g.DirectReports("UC"), "UM4")

	if got := g.DirectReports("UNOBODY"); len(got) != 0 {
		t.Errorf("reports of unknown manager = %v, want none", userIDs(got))
	}
}

func TestManagedTeamsReturnsCopy(t *testing.T) {
	g := Normalize(consolidationExport())

	teams := g.ManagedTeams("UB")
	if len(teams) != 1 || teams[0] != ids.NewTeamID("UB", 0) {
		t.Fatalf("managed teams = %v", teams)
	}
	teams[0] = ids.NewTeamID("UHAX", 0)
	if g.Users["UB"].ManagedTeams[0] != ids.NewTeamID("UB", 0) {
		t.Error("graph mutated through returned slice")
	}

	if got := g.ManagedTeams("UNOBODY"); got != nil {
		t.Errorf("managed teams of unknown user = %v, want nil", got)
	}
}

func TestPrivilegedView(t *testing.T) {
	g := Normalize(consolidationExport())

	// US holds a grant on Deep; the grant cascades to Deep's ancestors
	// Core and Umbrella, so their members become visible.
	assertUserIDs(t, g.PrivilegedView("US"), "UM1", "UM2", "UM4")
}

func TestSecondaryView(t *testing.T) {
	g := Normalize(consolidationExport())

	// The explicit grant covers Deep only.
	assertUserIDs(t, g.SecondaryView("US"), "UM5")
}

func TestVisibilityOfUserWithoutGrants(t *testing.T) {
	g := Normalize(consolidationExport())

	if got := g.PrivilegedView("UM1"); len(got) != 0 {
		t.Errorf("privileged view = %v, want none", userIDs(got))
	}
	if got := g.SecondaryView("UM1"); len(got) != 0 {
		t.Errorf("secondary view = %v, want none", userIDs(got))
	}
}
