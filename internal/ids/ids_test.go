package ids

import (
	"encoding/json"
	"testing"
)

func TestTeamIDString(t *testing.T) {
	id := NewTeamID("U024BE7LH", 2)
	if got := id.String(); got != "U024BE7LH&2" {
		t.Errorf("String() = %q, want %q", got, "U024BE7LH&2")
	}
	if got := (TeamID{}).String(); got != "" {
		t.Errorf("zero String() = %q, want empty", got)
	}
}

func TestParseTeamID(t *testing.T) {
	tests := []struct {
		in      string
		want    TeamID
		wantErr bool
	}{
		{"U024BE7LH&0", TeamID{Manager: "U024BE7LH", Seq: 0}, false},
		{"U1&13", TeamID{Manager: "U1", Seq: 13}, false},
		{"U1", TeamID{}, true},
		{"U1&", TeamID{}, true},
		{"&3", TeamID{}, true},
		{"U1&x", TeamID{}, true},
		{"U1&-1", TeamID{}, true},
		{"", TeamID{}, true},
	}

	for _, tt := range tests {
		got, err := ParseTeamID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTeamID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTeamID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseTeamIDRoundTrip(t *testing.T) {
	orig := NewTeamID("U99ZZ", 7)
	parsed, err := ParseTeamID(orig.String())
	if err != nil {
		t.Fatalf("ParseTeamID: %v", err)
	}
	if parsed != orig {
		t.Errorf("round trip = %v, want %v", parsed, orig)
	}
}

func TestTeamIDJSONMapKey(t *testing.T) {
	m := map[TeamID]string{NewTeamID("U2", 0): "Platform"}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var back map[TeamID]string
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back[NewTeamID("U2", 0)] != "Platform" {
		t.Errorf("round trip lost map entry: %v", back)
	}
}

func TestTeamIDUnmarshalEmpty(t *testing.T) {
	var id TeamID
	if err := id.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText(nil): %v", err)
	}
	if !id.IsZero() {
		t.Errorf("expected zero TeamID, got %v", id)
	}
}
