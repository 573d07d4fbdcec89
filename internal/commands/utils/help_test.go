package utils

import (
	"testing"

	"github.com/PancyStudios/RailmodGo/pkg/discord"
)

func TestHelpText(t *testing.T) {
	if got := helpText(nil); got != "no commands found ¯\\_(ツ)_/¯" {
		t.Errorf("helpText(nil) = %q", got)
	}

	cc := discord.NewCommandCollection()
	cc.Set(discord.NewCommand("secret", "hidden command", "dev", nil).AsHidden())
	if got := helpText(cc); got != "no commands found ¯\\_(ツ)_/¯" {
		t.Errorf("helpText(hidden only) = %q", got)
	}

	cc.Set(discord.NewCommand("warn", "warns a member", "mod", nil))
	cc.Set(discord.NewCommand("ban", "bans a member", "mod", nil))
	want := "`ban` | bans a member\n`warn` | warns a member"
	if got := helpText(cc); got != want {
		t.Errorf("helpText() = %q, want %q", got, want)
	}
}
