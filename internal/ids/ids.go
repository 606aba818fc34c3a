// Package ids defines the typed identifiers shared by the snapshot loader
// and the org graph: Slack-style user and channel IDs, and the synthesized
// team ID.
package ids

import (
	"fmt"
	"strconv"
	"strings"
)

// UserID is an opaque Slack user identifier (e.g. "U024BE7LH").
type UserID string

// ChannelID is an opaque Slack channel identifier (e.g. "C0G9QF9GZ").
type ChannelID string

// TeamID identifies a team by its manager and the team's position within
// that manager's led-team collection. It is a value type rather than a
// concatenated string so that no consumer ever has to split on the
// delimiter; the string form exists only at serialization boundaries.
type TeamID struct {
	Manager UserID
	Seq     int
}

// NewTeamID builds the team ID for the seq-th team led by manager.
func NewTeamID(manager UserID, seq int) TeamID {
	return TeamID{Manager: manager, Seq: seq}
}

// IsZero reports whether t is the zero TeamID, used throughout the graph
// to mean "no team".
func (t TeamID) IsZero() bool {
	return t.Manager == ""
}

// String renders the wire form "<manager>&<seq>". The zero TeamID renders
// as the empty string.
func (t TeamID) String() string {
	if t.IsZero() {
		return ""
	}
	return string(t.Manager) + "&" + strconv.Itoa(t.Seq)
}

// ParseTeamID parses the wire form produced by String. The delimiter is
// split from the right so a '&' inside the manager portion cannot shift
// the sequence number.
func ParseTeamID(s string) (TeamID, error) {
	i := strings.LastIndexByte(s, '&')
	if i <= 0 || i == len(s)-1 {
		return TeamID{}, fmt.Errorf("malformed team id %q", s)
	}
	seq, err := strconv.Atoi(s[i+1:])
	if err != nil || seq < 0 {
		return TeamID{}, fmt.Errorf("malformed team id %q: bad sequence number", s)
	}
	return TeamID{Manager: UserID(s[:i]), Seq: seq}, nil
}

// MarshalText implements encoding.TextMarshaler so TeamID can key JSON
// maps and appear in JSON arrays as its wire form.
func (t TeamID) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string
// decodes to the zero TeamID, matching an absent field in the export.
func (t *TeamID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*t = TeamID{}
		return nil
	}
	parsed, err := ParseTeamID(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
