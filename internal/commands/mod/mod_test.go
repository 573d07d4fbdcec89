package mod

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PancyStudios/RailmodGo/pkg/state"
)

func TestRenderWarningsTruncates(t *testing.T) {
	var warnings []string
	for i := 1; i <= 12; i++ {
		warnings = append(warnings, fmt.Sprintf("w%d", i))
	}

	got := renderWarnings("7", warnings)
	lines := strings.Split(got, "\n")

	assert.Equal(t, "<@7> has 12 warning(s), showing the last 10:", lines[0])
	assert.Len(t, lines, 11)
	assert.Equal(t, "3. w3", lines[1])
	assert.Equal(t, "12. w12", lines[10])
}

func TestSummaryEmbed(t *testing.T) {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	embed := summaryEmbed("someone", state.MemberSummary{
		MemberID:     "7",
		JoinedAt:     joined,
		JoinedAgo:    "2 years ago",
		WarningCount: 3,
		Severity:     state.SeveritySevere,
		Recent:       []string{"a", "b", "c"},
		Banned:       true,
	})

	assert.Equal(t, "someone", embed.Title)
	assert.Equal(t, state.SeveritySevere.Color(), embed.Color)
	assert.Len(t, embed.Fields, 5)
	assert.Contains(t, embed.Fields[1].Value, fmt.Sprintf("<t:%d:D>", joined.Unix()))
	assert.Equal(t, "• a\n• b\n• c", embed.Fields[3].Value)

	empty := summaryEmbed("7", state.MemberSummary{MemberID: "7", JoinedAgo: "unknown"})
	assert.Equal(t, "unknown", empty.Fields[1].Value)
	assert.Equal(t, "none", empty.Fields[3].Value)
	assert.Len(t, empty.Fields, 4)
}
