// Package snapshot reads the raw denormalized directory export that the
// org graph is built from. The export is one JSON object keyed by manager
// user ID; each record carries the manager's own memberships plus the
// teams they lead. Field names follow the upstream export format.
package snapshot

import (
	"github.com/ziadkadry99/orgchart/internal/ids"
)

// Export is the raw per-manager record map.
type Export map[ids.UserID]ManagerRecord

// ManagerRecord is one denormalized entry in the export.
type ManagerRecord struct {
	RealName string `json:"realName"`

	// MemberTeams lists the teams this person belongs to as a member.
	// The export calls this field "manager".
	MemberTeams []ids.TeamID `json:"manager"`

	// PrivilegedTeams lists teams this person has secondary-manager
	// visibility into without leading them.
	PrivilegedTeams []ids.TeamID `json:"s_manager"`

	// LedTeams holds the teams this person leads, keyed by the team's
	// sequence number within this manager (as a decimal string).
	LedTeams map[string]TeamRecord `json:"teams"`
}

// TeamRecord is the nested per-team object inside a manager record.
type TeamRecord struct {
	Name              string         `json:"name"`
	Members           []ids.UserID   `json:"directs"`
	SecondaryManagers []ids.UserID   `json:"s_manager"`
	Settings          SettingsRecord `json:"settings"`
}

// SettingsRecord carries a team's channel anchor and consolidation links.
type SettingsRecord struct {
	ChannelID         ids.ChannelID `json:"channel_id"`
	ConsolidatedTeams []ids.TeamID  `json:"consolidatedTeams"`
	PrimaryTeam       ids.TeamID    `json:"consolidatedPrimaryTeam"`
}

// Merge copies every record of other into e. Later shards win on
// duplicate manager IDs.
func (e Export) Merge(other Export) {
	for id, rec := range other {
		e[id] = rec
	}
}

// ChannelOption is a selectable channel projection for the rendering
// layer's dropdown, preserving the order of the channel lookup file.
type ChannelOption struct {
	Label string        `json:"label"`
	Value ids.ChannelID `json:"value"`
}
