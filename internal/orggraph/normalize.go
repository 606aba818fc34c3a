package orggraph

import (
	"sort"
	"strconv"
	"time"

	"github.com/ziadkadry99/orgchart/internal/ids"
	"github.com/ziadkadry99/orgchart/internal/snapshot"
)

// Normalize converts the raw per-manager export into the normalized
// Team/User graph. The pass is idempotent: team IDs are a pure function
// of (manager, sequence number), and iteration is ordered so repeated
// runs over the same export produce identical maps and diagnostics.
func Normalize(export snapshot.Export) *Graph {
	g := &Graph{
		Users:    make(UserMap, len(export)),
		Teams:    make(TeamMap),
		LoadedAt: time.Now().UTC(),
	}

	for _, managerID := range export.ManagerIDs() {
		rec := export[managerID]

		managed := make([]ids.TeamID, 0, len(rec.LedTeams))
		for _, seq := range sortedSeqs(rec.LedTeams, string(managerID), &g.Diagnostics) {
			teamRec := rec.LedTeams[strconv.Itoa(seq)]
			teamID := ids.NewTeamID(managerID, seq)

			settings := TeamSettings{
				ChannelID:         teamRec.Settings.ChannelID,
				PrimaryTeam:       teamRec.Settings.PrimaryTeam,
				ConsolidatedTeams: append([]ids.TeamID(nil), teamRec.Settings.ConsolidatedTeams...),
			}

			g.Teams[teamID] = &Team{
				ID:                teamID,
				Name:              teamRec.Name,
				Manager:           managerID,
				SecondaryManagers: append([]ids.UserID(nil), teamRec.SecondaryManagers...),
				Members:           append([]ids.UserID(nil), teamRec.Members...),
				Settings:          settings,
				RootKind:          classify(settings, teamID),
			}
			managed = append(managed, teamID)
		}

		g.Users[managerID] = &User{
			ID:              managerID,
			RealName:        rec.RealName,
			MemberTeams:     append([]ids.TeamID(nil), rec.MemberTeams...),
			ManagedTeams:    managed,
			PrivilegedTeams: append([]ids.TeamID(nil), rec.PrivilegedTeams...),
		}
	}

	g.Diagnostics = append(g.Diagnostics, g.verifyReferences()...)
	return g
}

// sortedSeqs extracts the numeric sequence keys of a led-team collection
// in ascending order. Non-numeric keys are reported and skipped.
func sortedSeqs(teams map[string]snapshot.TeamRecord, manager string, diags *[]Diagnostic) []int {
	keys := make([]string, 0, len(teams))
	for key := range teams {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seqs := make([]int, 0, len(keys))
	for _, key := range keys {
		seq, err := strconv.Atoi(key)
		if err != nil || seq < 0 {
			*diags = append(*diags, Diagnostic{
				Kind:    BadTeamKey,
				Subject: manager,
				Field:   "teams",
				Ref:     key,
			})
			continue
		}
		seqs = append(seqs, seq)
	}
	sort.Ints(seqs)
	return seqs
}

// verifyReferences scans the finished maps for dangling identifiers.
// Gaps are soft: they are reported here and tolerated by every query.
func (g *Graph) verifyReferences() []Diagnostic {
	var diags []Diagnostic

	for _, userID := range g.sortedUserIDs() {
		user := g.Users[userID]
		diags = appendTeamRefDiags(diags, g, string(userID), "memberTeams", user.MemberTeams)
		diags = appendTeamRefDiags(diags, g, string(userID), "privilegedTeams", user.PrivilegedTeams)
	}

	for _, teamID := range g.sortedTeamIDs() {
		team := g.Teams[teamID]
		subject := teamID.String()

		if _, ok := g.Users[team.Manager]; !ok {
			diags = append(diags, Diagnostic{Kind: MissingUser, Subject: subject, Field: "manager", Ref: string(team.Manager)})
		}
		for _, uid := range team.SecondaryManagers {
			if _, ok := g.Users[uid]; !ok {
				diags = append(diags, Diagnostic{Kind: MissingUser, Subject: subject, Field: "secondaryManagers", Ref: string(uid)})
			}
		}
		for _, uid := range team.Members {
			if _, ok := g.Users[uid]; !ok {
				diags = append(diags, Diagnostic{Kind: MissingUser, Subject: subject, Field: "members", Ref: string(uid)})
			}
		}

		if k := team.RootKind; k == ConsolidatesInto {
			if _, ok := g.Teams[team.Settings.PrimaryTeam]; !ok {
				diags = append(diags, Diagnostic{Kind: MissingTeam, Subject: subject, Field: "primaryTeam", Ref: team.Settings.PrimaryTeam.String()})
			}
		}
		for _, child := range team.Settings.ConsolidatedTeams {
			if _, ok := g.Teams[child]; !ok {
				diags = append(diags, Diagnostic{Kind: MissingTeam, Subject: subject, Field: "consolidatedTeams", Ref: child.String()})
			}
		}
	}

	return diags
}

func appendTeamRefDiags(diags []Diagnostic, g *Graph, subject, field string, refs []ids.TeamID) []Diagnostic {
	for _, teamID := range refs {
		if _, ok := g.Teams[teamID]; !ok {
			diags = append(diags, Diagnostic{Kind: MissingTeam, Subject: subject, Field: field, Ref: teamID.String()})
		}
	}
	return diags
}

func (g *Graph) sortedUserIDs() []ids.UserID {
	out := make([]ids.UserID, 0, len(g.Users))
	for id := range g.Users {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (g *Graph) sortedTeamIDs() []ids.TeamID {
	out := make([]ids.TeamID, 0, len(g.Teams))
	for id := range g.Teams {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Manager != out[j].Manager {
			return out[i].Manager < out[j].Manager
		}
		return out[i].Seq < out[j].Seq
	})
	return out
}
