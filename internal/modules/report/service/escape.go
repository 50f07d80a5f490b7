package service

import "strings"

const markdownV2Reserved = "\\_*[]()~`>#+-=|{}.!"

// EscapeMarkdownV2 prefixes every Telegram MarkdownV2 control character with a backslash.
func EscapeMarkdownV2(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(markdownV2Reserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
