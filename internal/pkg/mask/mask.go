package mask

import "strings"

// Nickname keeps the first and last rune and stars the rest.
func Nickname(name string) string {
	runes := []rune(strings.TrimSpace(name))
	switch len(runes) {
	case 0:
		return "unknown user"
	case 1:
		return string(runes) + "*"
	case 2:
		return string(runes[0]) + "*"
	default:
		return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
	}
}

// Account hides the middle of an account identifier.
func Account(id string) string {
	if id == "" {
		return "unknown"
	}
	runes := []rune(id)
	if len(runes) < 4 {
		return "****"
	}
	return string(runes[:2]) + "****" + string(runes[len(runes)-2:])
}
