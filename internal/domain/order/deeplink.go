package order

import (
	"fmt"
	"strings"
)

// messengerBase is the Messenger deep-link prefix; the channel id is the
// restaurant's page handle.
const messengerBase = "https://m.me/"

// DefaultChannel is the Oro Restaurant Messenger handle.
const DefaultChannel = "orofoodhouse"

// DeepLink builds the one-way handoff URL carrying the order text as a
// percent-encoded query parameter. Nothing is ever read back from the
// channel; correctness is byte-exact construction of the link.
func DeepLink(channel, text string) string {
	if channel == "" {
		channel = DefaultChannel
	}
	return messengerBase + channel + "?text=" + EncodeComponent(text)
}

// EncodeComponent percent-encodes text for embedding in a URL query
// parameter, matching the JavaScript encodeURIComponent unreserved set
// (ALPHA / DIGIT / "-" / "_" / "." / "!" / "~" / "*" / "'" / "(" / ")").
// Encoding is byte-wise over the UTF-8 representation.
func EncodeComponent(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
