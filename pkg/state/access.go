package state

import (
	"context"
	"fmt"
	"sort"
)

// IsPrivileged reports whether any of the given roles is an admin role of the guild.
// An unreachable store counts as not privileged.
func (e *Engine) IsPrivileged(ctx context.Context, guildID string, roleIDs []string) bool {
	if len(roleIDs) == 0 {
		return false
	}

	res := e.store.SMIsMember(ctx, adminRolesKey(guildID), roleIDs...)
	if res.IsUnavailable() {
		return false
	}
	for _, found := range res.Value {
		if found {
			return true
		}
	}
	return false
}

// Authorize returns ErrPrivilegeDenied unless the actor may run gated operations
func (e *Engine) Authorize(ctx context.Context, actor Actor, guildID string) error {
	if actor.Operator {
		return nil
	}
	if !e.IsPrivileged(ctx, guildID, actor.RoleIDs) {
		return ErrPrivilegeDenied
	}
	return nil
}

// AddAdminRole marks a role as admin. Adding it twice is a no-op.
func (e *Engine) AddAdminRole(ctx context.Context, guildID, roleID string) error {
	if err := e.store.SAdd(ctx, adminRolesKey(guildID), roleID); err != nil {
		return fmt.Errorf("add admin role: %w", err)
	}
	return nil
}

// RemoveAdminRole unmarks a role. Removing a role that was never added succeeds.
func (e *Engine) RemoveAdminRole(ctx context.Context, guildID, roleID string) error {
	if err := e.store.SRem(ctx, adminRolesKey(guildID), roleID); err != nil {
		return fmt.Errorf("remove admin role: %w", err)
	}
	return nil
}

// AdminRoles lists the admin roles of a guild, sorted
func (e *Engine) AdminRoles(ctx context.Context, guildID string) []string {
	roles := e.store.SMembers(ctx, adminRolesKey(guildID)).Or(nil)
	if roles == nil {
		return []string{}
	}
	sort.Strings(roles)
	return roles
}
