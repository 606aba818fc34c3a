// Package orggraph derives the normalized Team/User graph from a raw
// directory export and answers consolidation-hierarchy and visibility
// queries over it. A Graph is built in one pass and never mutated
// afterwards; a fresh snapshot produces a wholly new Graph.
package orggraph

import (
	"time"

	"github.com/ziadkadry99/orgchart/internal/ids"
)

// User is a person in the normalized graph.
type User struct {
	ID       ids.UserID `json:"id"`
	RealName string     `json:"realName"`

	// MemberTeams are teams this user belongs to as a member.
	MemberTeams []ids.TeamID `json:"memberTeams"`

	// ManagedTeams are teams this user is the manager of record for.
	ManagedTeams []ids.TeamID `json:"managedTeams"`

	// PrivilegedTeams are teams this user has secondary-manager
	// visibility into without leading them.
	PrivilegedTeams []ids.TeamID `json:"privilegedTeams"`
}

// TeamSettings holds a team's channel anchor and consolidation links.
type TeamSettings struct {
	ChannelID ids.ChannelID `json:"channelId,omitempty"`

	// PrimaryTeam is the team this one consolidates into. A team
	// referencing itself is its own root; the zero TeamID means no
	// consolidation parent.
	PrimaryTeam ids.TeamID `json:"primaryTeam"`

	// ConsolidatedTeams are the inverse edges: teams that declare this
	// team as their primary.
	ConsolidatedTeams []ids.TeamID `json:"consolidatedTeams"`
}

// RootKind classifies how a team terminates (or continues) a
// consolidation chain. It is computed once during normalization so that
// resolvers never re-derive the self-reference check at call sites.
type RootKind int

const (
	// SelfRoot marks a team whose primary team is itself.
	SelfRoot RootKind = iota
	// ChannelAnchored marks a team with no primary team but a channel
	// anchor; it acts as the root of its chain.
	ChannelAnchored
	// Unanchored marks a team with neither a primary team nor a channel;
	// its chain has no discoverable root.
	Unanchored
	// ConsolidatesInto marks a team that rolls up into another team
	// (Settings.PrimaryTeam).
	ConsolidatesInto
)

func (k RootKind) String() string {
	switch k {
	case SelfRoot:
		return "self-root"
	case ChannelAnchored:
		return "channel-anchored"
	case Unanchored:
		return "unanchored"
	case ConsolidatesInto:
		return "consolidates-into"
	default:
		return "unknown"
	}
}

// Team is an organizational unit in the normalized graph.
type Team struct {
	ID                ids.TeamID   `json:"id"`
	Name              string       `json:"name"`
	Manager           ids.UserID   `json:"manager"`
	SecondaryManagers []ids.UserID `json:"secondaryManagers"`
	Members           []ids.UserID `json:"members"`
	Settings          TeamSettings `json:"teamSettings"`
	RootKind          RootKind     `json:"-"`
}

// UserMap and TeamMap are the normalized keyed collections. They are
// built once per pass and treated as immutable by every consumer.
type (
	UserMap map[ids.UserID]*User
	TeamMap map[ids.TeamID]*Team
)

// DiagnosticKind labels a soft data-quality finding.
type DiagnosticKind string

const (
	// MissingUser means a team references a user absent from the user map.
	MissingUser DiagnosticKind = "missing_user"
	// MissingTeam means a user references a team absent from the team map.
	MissingTeam DiagnosticKind = "missing_team"
	// BadTeamKey means a led-team collection key was not a sequence number.
	BadTeamKey DiagnosticKind = "bad_team_key"
)

// Diagnostic records a referential gap discovered during normalization.
// Diagnostics never fail the pass; affected queries simply return empty
// results for the dangling reference.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Subject string         `json:"subject"` // entity holding the reference
	Field   string         `json:"field"`
	Ref     string         `json:"ref"` // the identifier that did not resolve
}

// Graph is one immutable normalization result.
type Graph struct {
	Users       UserMap      `json:"users"`
	Teams       TeamMap      `json:"teams"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	LoadedAt    time.Time    `json:"loadedAt"`
}

func classify(settings TeamSettings, id ids.TeamID) RootKind {
	switch {
	case settings.PrimaryTeam == id:
		return SelfRoot
	case !settings.PrimaryTeam.IsZero():
		return ConsolidatesInto
	case settings.ChannelID != "":
		return ChannelAnchored
	default:
		return Unanchored
	}
}
