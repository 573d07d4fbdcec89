package commands

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/bwmarrin/discordgo"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
	"github.com/PancyStudios/RailmodGo/pkg/state"
	"github.com/PancyStudios/RailmodGo/pkg/store"
)

const (
	guildID   = "200000000000000001"
	channelID = "200000000000000002"
	modID     = "200000000000000003"
	memberID  = "200000000000000004"
	modRole   = "200000000000000005"
)

type fakePlatform struct {
	mu       sync.Mutex
	sent     map[string][]*discordgo.MessageSend
	deleted  []string
	banned   []string
	banErr   error
	closedDM bool
	perms    int64
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{sent: make(map[string][]*discordgo.MessageSend)}
}

func (p *fakePlatform) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closedDM && strings.HasPrefix(channelID, "dm-") {
		return nil, errors.New("cannot send messages to this user")
	}
	p.sent[channelID] = append(p.sent[channelID], data)
	return &discordgo.Message{ChannelID: channelID}, nil
}

func (p *fakePlatform) ChannelMessageDelete(_, messageID string, _ ...discordgo.RequestOption) error {
	p.deleted = append(p.deleted, messageID)
	return nil
}

func (p *fakePlatform) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

func (p *fakePlatform) UserChannelPermissions(_, _ string, _ ...discordgo.RequestOption) (int64, error) {
	return p.perms, nil
}

func (p *fakePlatform) GuildBanCreateWithReason(_, userID, _ string, _ int, _ ...discordgo.RequestOption) error {
	if p.banErr != nil {
		return p.banErr
	}
	p.banned = append(p.banned, userID)
	return nil
}

func (p *fakePlatform) GuildBanDelete(_, userID string, _ ...discordgo.RequestOption) error {
	return p.banErr
}

func (p *fakePlatform) GuildMember(guildID, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	return &discordgo.Member{
		GuildID:  guildID,
		User:     &discordgo.User{ID: userID, Username: "member"},
		JoinedAt: time.Now().Add(-48 * time.Hour),
	}, nil
}

func (p *fakePlatform) Guild(guildID string, _ ...discordgo.RequestOption) (*discordgo.Guild, error) {
	return &discordgo.Guild{ID: guildID, Name: "Railway"}, nil
}

// last returns the most recent message sent to a channel
func (p *fakePlatform) last(t *testing.T, channelID string) *discordgo.MessageSend {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	msgs := p.sent[channelID]
	require.NotEmpty(t, msgs, "nothing sent to %s", channelID)
	return msgs[len(msgs)-1]
}

type recordingPublisher struct {
	events []mqtt.Event
}

func (r *recordingPublisher) PublishEvent(ev mqtt.Event) {
	r.events = append(r.events, ev)
}

type bot struct {
	handler   *discord.CommandHandler
	platform  *fakePlatform
	engine    *state.Engine
	publisher *recordingPublisher
}

func setupBot(t *testing.T) *bot {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	s := store.NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = s.Close()
		mr.Close()
	})

	platform := newFakePlatform()
	relay := discord.NewDMRelay(platform)
	engine := state.NewEngine(s, state.Options{Notifier: relay})
	publisher := &recordingPublisher{}

	handler := discord.NewCommandHandler(discord.HandlerOptions{
		Engine:    engine,
		Platform:  platform,
		Relay:     relay,
		Publisher: publisher,
	})
	RegisterAll(handler)

	require.NoError(t, engine.AddAdminRole(context.Background(), guildID, modRole))
	return &bot{handler: handler, platform: platform, engine: engine, publisher: publisher}
}

// send dispatches content as the moderator, who holds the admin role
func (b *bot) send(t *testing.T, content string) string {
	t.Helper()
	return b.sendAs(t, modID, []string{modRole}, content)
}

func (b *bot) sendAs(t *testing.T, authorID string, roles []string, content string) string {
	t.Helper()
	m := &discordgo.Message{
		ID:        "msg",
		GuildID:   guildID,
		ChannelID: channelID,
		Content:   content,
		Author:    &discordgo.User{ID: authorID},
		Member:    &discordgo.Member{Roles: roles},
	}
	require.True(t, b.handler.Dispatch(context.Background(), m), "%q was not dispatched", content)
	return b.platform.last(t, channelID).Content
}

func TestRegisterAll(t *testing.T) {
	b := setupBot(t)
	for _, name := range []string{
		"ping", "help", "prefix", "stats",
		"setprefix", "resetprefix", "setpointsname", "addadminrole", "removeadminrole", "adminroles",
		"setpoints", "addpoints", "points", "leaderboard", "top",
		"warn", "warnings", "userinfo", "ban", "unban",
	} {
		_, ok := b.handler.Commands().Get(name)
		assert.True(t, ok, "command %s should be registered", name)
	}
}

func TestUtilsCommands(t *testing.T) {
	b := setupBot(t)

	assert.Equal(t, "pong!", b.send(t, "rm;ping"))
	assert.Equal(t, "the prefix for this server is `rm;`", b.send(t, "rm;prefix"))

	help := b.send(t, "rm;help")
	assert.Contains(t, help, "`ping` | checks that the bot is alive")
	assert.Contains(t, help, "`warn` | warns a member")

	b.send(t, "rm;stats")
	embeds := b.platform.last(t, channelID).Embeds
	require.Len(t, embeds, 1)
	assert.Equal(t, "Railmod stats", embeds[0].Title)
}

func TestPrefixCommands(t *testing.T) {
	b := setupBot(t)
	b.platform.perms = discordgo.PermissionAdministrator

	assert.Equal(t, "please provide a new prefix, for example `rm;setprefix !`", b.send(t, "rm;setprefix"))
	assert.Equal(t, "prefix set to `!` for this server", b.send(t, "rm;setprefix !"))
	assert.Equal(t, "the prefix for this server is `!`", b.send(t, "!prefix"))
	assert.Equal(t, "prefix reset to `rm;`", b.send(t, "!resetprefix"))
	assert.Equal(t, "the prefix for this server is `rm;`", b.send(t, "rm;prefix"))

	require.Len(t, b.publisher.events, 2)
	assert.Equal(t, mqtt.EventPrefix, b.publisher.events[0].Kind)
	assert.Equal(t, "!", b.publisher.events[0].Detail)
}

func TestSetPrefixTakesFirstToken(t *testing.T) {
	b := setupBot(t)
	b.platform.perms = discordgo.PermissionAdministrator

	assert.Equal(t, "prefix set to `a` for this server", b.send(t, "rm;setprefix a b"))
	assert.Equal(t, "a", b.engine.Prefix(context.Background(), guildID))
}

func TestSetPrefixNeedsAdministrator(t *testing.T) {
	b := setupBot(t)

	m := &discordgo.Message{
		ID: "denied", GuildID: guildID, ChannelID: channelID, Content: "rm;setprefix !",
		Author: &discordgo.User{ID: modID}, Member: &discordgo.Member{Roles: []string{modRole}},
	}
	require.True(t, b.handler.Dispatch(context.Background(), m))

	assert.Equal(t, "rm;", b.engine.Prefix(context.Background(), guildID))
	assert.Equal(t, []string{"denied"}, b.platform.deleted)
	assert.Empty(t, b.platform.sent[channelID])
	assert.Contains(t, b.platform.last(t, "dm-"+modID).Content, "**Railway**")
}

func TestAdminRoleCommands(t *testing.T) {
	b := setupBot(t)
	b.platform.perms = discordgo.PermissionAdministrator
	const role = "200000000000000009"

	assert.Equal(t, "usage: `rm;addadminrole <@role>`", b.send(t, "rm;addadminrole everyone"))
	assert.Equal(t, "<@&"+role+"> can now use privileged commands", b.send(t, "rm;addadminrole <@&"+role+">"))
	assert.Equal(t, "<@&"+role+"> can now use privileged commands", b.send(t, "rm;addadminrole "+role))
	assert.Equal(t, "admin roles: <@&"+modRole+">, <@&"+role+">", b.send(t, "rm;adminroles"))
	assert.Equal(t, "<@&"+role+"> can no longer use privileged commands", b.send(t, "rm;removeadminrole <@&"+role+">"))
	assert.Equal(t, "<@&"+role+"> can no longer use privileged commands", b.send(t, "rm;removeadminrole <@&"+role+">"))
	assert.Equal(t, "admin roles: <@&"+modRole+">", b.send(t, "rm;adminroles"))
}

func TestPointsCommands(t *testing.T) {
	b := setupBot(t)
	target := "<@" + memberID + ">"

	assert.Equal(t, "please provide a name, for example `rm;setpointsname cookies`", b.send(t, "rm;setpointsname"))
	assert.Equal(t, "points are now called `cookies` in this server", b.send(t, "rm;setpointsname cookies"))

	assert.Equal(t, "nobody has any cookies yet", b.send(t, "rm;top"))
	assert.Equal(t, target+" now has 1 cookies", b.send(t, "rm;addpoints "+target))
	assert.Equal(t, target+" now has 1 cookies", b.send(t, "rm;addpoints "+target+" 0"))
	assert.Equal(t, target+" now has 1,500 cookies", b.send(t, "rm;setpoints "+target+" 1500"))
	assert.Equal(t, target+" now has 1,495 cookies", b.send(t, "rm;addpoints "+target+" -5"))
	assert.Equal(t, "usage: `rm;setpoints <@member> <amount>`", b.send(t, "rm;setpoints "+target+" lots"))
	assert.Equal(t, "usage: `rm;setpoints <@member> <amount>`", b.send(t, "rm;setpoints "+target))

	assert.Equal(t, target+" has 1,495 cookies (1st place)", b.send(t, "rm;points "+target))
	assert.Equal(t, "<@"+modID+"> has 0 cookies", b.send(t, "rm;points"))

	b.send(t, "rm;leaderboard")
	embeds := b.platform.last(t, channelID).Embeds
	require.Len(t, embeds, 1)
	assert.Equal(t, "1. "+target+" · 1,495", embeds[0].Description)
}

func TestPointsCommandsScoreRange(t *testing.T) {
	b := setupBot(t)
	target := "<@" + memberID + ">"

	assert.Equal(t, "usage: `rm;setpoints <@member> <amount>`", b.send(t, "rm;setpoints "+target+" 9223372036854775807"))
	assert.Equal(t, "usage: `rm;setpoints <@member> <amount>`", b.send(t, "rm;setpoints "+target+" 9007199254740993"))
	assert.Equal(t, "usage: `rm;addpoints <@member> [amount]`", b.send(t, "rm;addpoints "+target+" -9007199254740993"))

	assert.Equal(t, target+" now has 9,007,199,254,740,992 points", b.send(t, "rm;setpoints "+target+" 9007199254740992"))
	assert.Equal(t, "that would take the score past ±9,007,199,254,740,992", b.send(t, "rm;addpoints "+target))
	assert.Equal(t, int64(9007199254740992), b.engine.Score(context.Background(), guildID, memberID))
}

func TestPointsNeedPrivilege(t *testing.T) {
	b := setupBot(t)

	m := &discordgo.Message{
		ID: "sneaky", GuildID: guildID, ChannelID: channelID, Content: "rm;addpoints <@" + modID + "> 100",
		Author: &discordgo.User{ID: modID}, Member: &discordgo.Member{Roles: []string{"200000000000000077"}},
	}
	require.True(t, b.handler.Dispatch(context.Background(), m))

	assert.Equal(t, int64(0), b.engine.Score(context.Background(), guildID, modID))
	assert.Equal(t, []string{"sneaky"}, b.platform.deleted)
	assert.Empty(t, b.publisher.events)
}

func TestWarnCommands(t *testing.T) {
	b := setupBot(t)
	target := "<@" + memberID + ">"

	assert.Equal(t, "usage: `rm;warn <@member> <reason>`", b.send(t, "rm;warn "+target))
	assert.Equal(t, target+" has been warned, that's their 1st warning", b.send(t, "rm;warn "+target+" spamming links"))
	assert.Contains(t, b.platform.last(t, "dm-"+memberID).Content, "spamming links")

	b.platform.closedDM = true
	reply := b.send(t, "rm;warn "+target+" spamming links")
	assert.Contains(t, reply, "2nd warning")
	assert.Contains(t, reply, "couldn't DM them")

	assert.Equal(t, []string{"spamming links", "spamming links"}, b.engine.Warnings(context.Background(), guildID, memberID))
	assert.Equal(t, target+" has 2 warning(s):\n1. spamming links\n2. spamming links", b.send(t, "rm;warnings "+target))
	assert.Equal(t, "<@"+modID+"> has no warnings", b.send(t, "rm;warnings"))

	b.send(t, "rm;userinfo "+target)
	embeds := b.platform.last(t, channelID).Embeds
	require.Len(t, embeds, 1)
	assert.Equal(t, state.SeverityCaution.Color(), embeds[0].Color)
	assert.Equal(t, "member", embeds[0].Title)
}

func TestBanCommands(t *testing.T) {
	b := setupBot(t)
	target := "<@" + memberID + ">"
	ctx := context.Background()

	assert.Equal(t, target+" has been banned, reason: raiding", b.send(t, "rm;ban "+target+" raiding"))
	assert.True(t, b.engine.IsBanned(ctx, guildID, memberID))
	assert.Equal(t, []string{memberID}, b.platform.banned)

	assert.Equal(t, target+" has been unbanned", b.send(t, "rm;unban "+memberID))
	assert.False(t, b.engine.IsBanned(ctx, guildID, memberID))

	b.platform.banErr = &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusForbidden}}
	assert.Equal(t, "couldn't ban "+target+", i'm missing the permissions to do that", b.send(t, "rm;ban "+target))
	assert.False(t, b.engine.IsBanned(ctx, guildID, memberID))

	kinds := make([]mqtt.EventKind, len(b.publisher.events))
	for i, ev := range b.publisher.events {
		kinds[i] = ev.Kind
	}
	assert.Equal(t, []mqtt.EventKind{mqtt.EventBan, mqtt.EventUnban}, kinds)
}
