package state

import "fmt"

const defaultPrefixKey = "prefix:default"

func prefixKey(guildID string) string {
	return fmt.Sprintf("prefix:%s", guildID)
}

func pointsNameKey(guildID string) string {
	return fmt.Sprintf("pn:%s", guildID)
}

func adminRolesKey(guildID string) string {
	return fmt.Sprintf("adminroles:%s", guildID)
}

func pointsKey(guildID string) string {
	return fmt.Sprintf("points:%s", guildID)
}

func warningLogKey(guildID, memberID string) string {
	return fmt.Sprintf("warninglog:%s:%s", guildID, memberID)
}

func bannedKey(guildID, memberID string) string {
	return fmt.Sprintf("banned:%s:%s", guildID, memberID)
}
