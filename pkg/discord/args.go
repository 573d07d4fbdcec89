package discord

import (
	"regexp"
	"strings"
)

var (
	userMentionRe = regexp.MustCompile(`^<@!?(\d{15,21})>$`)
	roleMentionRe = regexp.MustCompile(`^<@&(\d{15,21})>$`)
	snowflakeRe   = regexp.MustCompile(`^\d{15,21}$`)
)

// ParseUserID accepts a user mention or a raw snowflake
func ParseUserID(arg string) (string, bool) {
	return parseMention(userMentionRe, arg)
}

// ParseRoleID accepts a role mention or a raw snowflake
func ParseRoleID(arg string) (string, bool) {
	return parseMention(roleMentionRe, arg)
}

func parseMention(re *regexp.Regexp, arg string) (string, bool) {
	arg = strings.TrimSpace(arg)
	if m := re.FindStringSubmatch(arg); m != nil {
		return m[1], true
	}
	if snowflakeRe.MatchString(arg) {
		return arg, true
	}
	return "", false
}

// stripPrefix removes the guild prefix or a leading bot mention from content
func stripPrefix(content, prefix, botID string) (string, bool) {
	if prefix != "" && strings.HasPrefix(content, prefix) {
		return content[len(prefix):], true
	}
	if botID == "" {
		return "", false
	}
	for _, mention := range []string{"<@" + botID + ">", "<@!" + botID + ">"} {
		if strings.HasPrefix(content, mention) {
			return strings.TrimSpace(content[len(mention):]), true
		}
	}
	return "", false
}
