package orggraph

import (
	"sort"

	"github.com/ziadkadry99/orgchart/internal/ids"
)

// userAccumulator collects users uniquely by ID, preserving first-seen
// order. Membership is keyed on the identifier, never on entity values.
type userAccumulator struct {
	seen  map[ids.UserID]bool
	users []*User
}

func newUserAccumulator() *userAccumulator {
	return &userAccumulator{seen: make(map[ids.UserID]bool)}
}

func (a *userAccumulator) add(g *Graph, userID ids.UserID) {
	if a.seen[userID] {
		return
	}
	user, ok := g.Users[userID]
	if !ok {
		// Dangling member reference; already surfaced as a diagnostic.
		return
	}
	a.seen[userID] = true
	a.users = append(a.users, user)
}

func (a *userAccumulator) addTeamMembers(g *Graph, teamID ids.TeamID) {
	team, ok := g.Teams[teamID]
	if !ok {
		return
	}
	for _, userID := range team.Members {
		a.add(g, userID)
	}
}

// UsersOfTeam returns the direct members of teamID, deduplicated. An
// unknown team yields an empty result.
func (g *Graph) UsersOfTeam(teamID ids.TeamID) []*User {
	acc := newUserAccumulator()
	acc.addTeamMembers(g, teamID)
	return acc.users
}

// UsersOfTeams returns the union of direct members across teamIDs.
func (g *Graph) UsersOfTeams(teamIDs []ids.TeamID) []*User {
	acc := newUserAccumulator()
	for _, teamID := range teamIDs {
		acc.addTeamMembers(g, teamID)
	}
	return acc.users
}

// UsersOfChannel returns every member of every team belonging to
// channelID (direct anchor or consolidation root anchored there).
func (g *Graph) UsersOfChannel(channelID ids.ChannelID) []*User {
	acc := newUserAccumulator()
	for _, team := range g.TeamsForChannel(channelID) {
		acc.addTeamMembers(g, team.ID)
	}
	return acc.users
}

// ManagedTeams returns the teams managerID is the manager of record for.
func (g *Graph) ManagedTeams(managerID ids.UserID) []ids.TeamID {
	user, ok := g.Users[managerID]
	if !ok {
		return nil
	}
	return append([]ids.TeamID(nil), user.ManagedTeams...)
}

// GrantedTeams returns the teams managerID holds an explicit
// secondary-manager grant for.
func (g *Graph) GrantedTeams(managerID ids.UserID) []ids.TeamID {
	user, ok := g.Users[managerID]
	if !ok {
		return nil
	}
	return append([]ids.TeamID(nil), user.PrivilegedTeams...)
}

// DirectReports returns the union of members across every team managed
// by managerID.
func (g *Graph) DirectReports(managerID ids.UserID) []*User {
	return g.UsersOfTeams(g.ManagedTeams(managerID))
}

// PrivilegedView returns the users visible to managerID through
// secondary-manager grants after cascading each grant up to its
// consolidation ancestors: a grant on one team implies visibility into
// the whole consolidated organization above it.
func (g *Graph) PrivilegedView(managerID ids.UserID) []*User {
	ancestorSet := make(map[ids.TeamID]bool)
	for _, grantedID := range g.GrantedTeams(managerID) {
		for _, ancestorID := range g.AncestorsOf(grantedID) {
			ancestorSet[ancestorID] = true
		}
	}

	ancestors := make([]ids.TeamID, 0, len(ancestorSet))
	for teamID := range ancestorSet {
		ancestors = append(ancestors, teamID)
	}
	sort.Slice(ancestors, func(i, j int) bool {
		if ancestors[i].Manager != ancestors[j].Manager {
			return ancestors[i].Manager < ancestors[j].Manager
		}
		return ancestors[i].Seq < ancestors[j].Seq
	})

	return g.UsersOfTeams(ancestors)
}

// SecondaryView returns the users of exactly the teams managerID was
// explicitly granted, with no ancestor expansion. It answers "what was
// granted" where PrivilegedView answers "what that grant implies".
func (g *Graph) SecondaryView(managerID ids.UserID) []*User {
	return g.UsersOfTeams(g.GrantedTeams(managerID))
}
