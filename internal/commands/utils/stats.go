package utils

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"

	"github.com/PancyStudios/RailmodGo/pkg/config"
	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/errors"
)

// createStatsCommand creates the stats command
func createStatsCommand() *discord.Command {
	return discord.NewCommand(
		"stats",
		"shows runtime statistics of the bot",
		"utils",
		statsHandler,
	)
}

// statsHandler replies with version, memory and uptime information
func statsHandler(ctx *discord.CommandContext) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	guilds := 0
	uptime := "unknown"
	if ctx.Client != nil {
		guilds = ctx.Client.GuildCount()
		if up := ctx.Client.Uptime(); up > 0 {
			uptime = up.Truncate(time.Second).String()
		}
	}

	handled := int64(0)
	if h := errors.Get(); h != nil {
		handled = h.Errors()
	}

	embed := &discordgo.MessageEmbed{
		Title: "Railmod stats",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Version", Value: config.Version, Inline: true},
			{Name: "Go", Value: strings.TrimPrefix(runtime.Version(), "go"), Inline: true},
			{Name: "DiscordGo", Value: discordgo.VERSION, Inline: true},
			{Name: "Memory", Value: humanize.Bytes(m.Alloc), Inline: true},
			{Name: "Goroutines", Value: fmt.Sprint(runtime.NumGoroutine()), Inline: true},
			{Name: "Servers", Value: humanize.Comma(int64(guilds)), Inline: true},
			{Name: "Uptime", Value: uptime, Inline: true},
			{Name: "Errors handled", Value: humanize.Comma(handled), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	return ctx.ReplyEmbed(embed)
}
