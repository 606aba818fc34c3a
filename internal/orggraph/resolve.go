package orggraph

import (
	"errors"
	"fmt"

	"github.com/ziadkadry99/orgchart/internal/ids"
)

// ErrConsolidationCycle is returned when a primaryTeam chain does not
// reach a terminal team within |teams| hops. The data conceptually forms
// a tree, but nothing upstream enforces that, so the walk is bounded.
var ErrConsolidationCycle = errors.New("consolidation cycle detected")

// RootOf follows primaryTeam links upward from teamID and returns the
// root team of its consolidation chain. A nil team with a nil error means
// no root is discoverable: the team is unknown, a link points at a
// missing team, or the chain ends unanchored. That is an expected data
// state, not a failure.
func (g *Graph) RootOf(teamID ids.TeamID) (*Team, error) {
	current, ok := g.Teams[teamID]
	if !ok {
		return nil, nil
	}

	for steps := 0; steps <= len(g.Teams); steps++ {
		switch current.RootKind {
		case SelfRoot, ChannelAnchored:
			return current, nil
		case Unanchored:
			return nil, nil
		case ConsolidatesInto:
			next, ok := g.Teams[current.Settings.PrimaryTeam]
			if !ok {
				return nil, nil
			}
			current = next
		}
	}

	return nil, fmt.Errorf("resolving root of %s: %w", teamID, ErrConsolidationCycle)
}

// ChildrenOf returns the immediate consolidation children declared by
// teamID, or nil if the team is unknown or has none.
func (g *Graph) ChildrenOf(teamID ids.TeamID) []ids.TeamID {
	team, ok := g.Teams[teamID]
	if !ok {
		return nil
	}
	return append([]ids.TeamID(nil), team.Settings.ConsolidatedTeams...)
}

// DescendantsOf returns every team that directly or transitively
// consolidates into teamID, in depth-first visitation order. Each team
// appears at most once even if reachable along multiple paths, which
// also bounds the walk on cyclic data.
func (g *Graph) DescendantsOf(teamID ids.TeamID) []ids.TeamID {
	if _, ok := g.Teams[teamID]; !ok {
		return nil
	}

	visited := map[ids.TeamID]bool{teamID: true}
	var order []ids.TeamID

	var walk func(id ids.TeamID)
	walk = func(id ids.TeamID) {
		team, ok := g.Teams[id]
		if !ok {
			return
		}
		for _, child := range team.Settings.ConsolidatedTeams {
			if visited[child] {
				continue
			}
			visited[child] = true
			order = append(order, child)
			walk(child)
		}
	}
	walk(teamID)

	return order
}

// AncestorsOf returns every team reachable by following primaryTeam
// links upward from teamID, excluding teamID itself even when it is its
// own root. The visited set stops a malformed cycle from looping.
func (g *Graph) AncestorsOf(teamID ids.TeamID) []ids.TeamID {
	team, ok := g.Teams[teamID]
	if !ok {
		return nil
	}

	visited := map[ids.TeamID]bool{teamID: true}
	var order []ids.TeamID

	for team.RootKind == ConsolidatesInto {
		parentID := team.Settings.PrimaryTeam
		if visited[parentID] {
			break
		}
		visited[parentID] = true
		order = append(order, parentID)

		parent, ok := g.Teams[parentID]
		if !ok {
			break
		}
		team = parent
	}

	return order
}
