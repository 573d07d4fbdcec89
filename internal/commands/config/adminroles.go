package config

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
)

// createAddAdminRoleCommand creates the addadminrole command
func createAddAdminRoleCommand() *discord.Command {
	return discord.NewCommand(
		"addadminrole",
		"lets a role use privileged commands",
		"config",
		addAdminRoleHandler,
	).WithUsage("<@role>").AsAdminOnly()
}

func addAdminRoleHandler(ctx *discord.CommandContext) error {
	roleID, ok := discord.ParseRoleID(ctx.Arg(0))
	if !ok {
		return ctx.Reply(ctx.Usage())
	}
	if err := ctx.Engine.AddAdminRole(ctx.Context(), ctx.GuildID(), roleID); err != nil {
		return err
	}
	ctx.Publish(mqtt.EventAdminRole, "", "+"+roleID)
	return ctx.Replyf("<@&%s> can now use privileged commands", roleID)
}

// createRemoveAdminRoleCommand creates the removeadminrole command
func createRemoveAdminRoleCommand() *discord.Command {
	return discord.NewCommand(
		"removeadminrole",
		"takes privileged commands away from a role",
		"config",
		removeAdminRoleHandler,
	).WithUsage("<@role>").AsAdminOnly()
}

func removeAdminRoleHandler(ctx *discord.CommandContext) error {
	roleID, ok := discord.ParseRoleID(ctx.Arg(0))
	if !ok {
		return ctx.Reply(ctx.Usage())
	}
	if err := ctx.Engine.RemoveAdminRole(ctx.Context(), ctx.GuildID(), roleID); err != nil {
		return err
	}
	ctx.Publish(mqtt.EventAdminRole, "", "-"+roleID)
	return ctx.Replyf("<@&%s> can no longer use privileged commands", roleID)
}

// createAdminRolesCommand creates the adminroles command
func createAdminRolesCommand() *discord.Command {
	return discord.NewCommand(
		"adminroles",
		"lists the roles that can use privileged commands",
		"config",
		adminRolesHandler,
	)
}

func adminRolesHandler(ctx *discord.CommandContext) error {
	roles := ctx.Engine.AdminRoles(ctx.Context(), ctx.GuildID())
	if len(roles) == 0 {
		return ctx.Replyf("no admin roles yet, add one with `%saddadminrole <@role>`", ctx.Prefix)
	}

	mentions := make([]string, len(roles))
	for i, id := range roles {
		mentions[i] = fmt.Sprintf("<@&%s>", id)
	}
	return ctx.Reply("admin roles: " + strings.Join(mentions, ", "))
}
