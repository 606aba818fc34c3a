package orggraph

import (
	"github.com/ziadkadry99/orgchart/internal/ids"
)

// HierarchyEntry is a team annotated with its resolved display parent.
// The root entry has a zero Parent.
type HierarchyEntry struct {
	Team   *Team      `json:"team"`
	Parent ids.TeamID `json:"parent,omitempty"`
}

// rootForChannel finds the team anchored to channelID, if any. Teams are
// scanned in sorted order so the result is deterministic even if the
// data violates the one-root-per-channel expectation.
func (g *Graph) rootForChannel(channelID ids.ChannelID) *Team {
	for _, teamID := range g.sortedTeamIDs() {
		if g.Teams[teamID].Settings.ChannelID == channelID {
			return g.Teams[teamID]
		}
	}
	return nil
}

// HierarchyForChannel returns the consolidation subtree anchored to
// channelID as a flat, ordered slice: the root first with its parent
// cleared, then every descendant in depth-first order annotated with its
// own primary team. An empty slice means the channel has no org data,
// which is not an error.
func (g *Graph) HierarchyForChannel(channelID ids.ChannelID) []HierarchyEntry {
	root := g.rootForChannel(channelID)
	if root == nil {
		return nil
	}

	entries := []HierarchyEntry{{Team: root}}
	for _, descID := range g.DescendantsOf(root.ID) {
		team, ok := g.Teams[descID]
		if !ok {
			continue
		}
		entries = append(entries, HierarchyEntry{
			Team:   team,
			Parent: team.Settings.PrimaryTeam,
		})
	}
	return entries
}

// TeamsForChannel returns every team belonging to channelID: teams
// anchored to it directly plus teams whose resolved consolidation root
// is anchored to it. Cyclic chains are skipped rather than failing the
// whole lookup.
func (g *Graph) TeamsForChannel(channelID ids.ChannelID) []*Team {
	var teams []*Team
	for _, teamID := range g.sortedTeamIDs() {
		team := g.Teams[teamID]
		if team.Settings.ChannelID == channelID {
			teams = append(teams, team)
			continue
		}
		root, err := g.RootOf(teamID)
		if err != nil || root == nil {
			continue
		}
		if root.Settings.ChannelID == channelID {
			teams = append(teams, team)
		}
	}
	return teams
}
