package points

import (
	"testing"

	"github.com/PancyStudios/RailmodGo/pkg/state"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		arg    string
		def    int64
		want   int64
		wantOK bool
	}{
		{"", state.DefaultIncrement, 1, true},
		{"0", state.DefaultIncrement, 0, true},
		{"-7", 0, -7, true},
		{"25", 0, 25, true},
		{"1.5", 0, 0, false},
		{"ten", 0, 0, false},
		{"9007199254740992", 0, state.MaxScore, true},
		{"-9007199254740992", 0, -state.MaxScore, true},
		{"9007199254740993", 0, 0, false},
		{"-9007199254740993", 0, 0, false},
		{"9223372036854775807", 0, 0, false},
		{"99999999999999999999", 0, 0, false},
	}

	for _, tt := range tests {
		got, ok := parseAmount(tt.arg, tt.def)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseAmount(%q) = %d, %v, want %d, %v", tt.arg, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRenderStandings(t *testing.T) {
	got := renderStandings([]state.Standing{
		{MemberID: "1", Score: 12000},
		{MemberID: "2", Score: -3},
	})
	want := "1. <@1> · 12,000\n2. <@2> · -3"
	if got != want {
		t.Errorf("renderStandings() = %q, want %q", got, want)
	}
}
