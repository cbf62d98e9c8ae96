package game

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Narrate turns a rejected action's error into a line for the message log.
func Narrate(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if !strings.HasSuffix(msg, ".") && !strings.HasSuffix(msg, "!") {
		msg += "."
	}
	return msg
}
