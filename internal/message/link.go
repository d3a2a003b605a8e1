package message

import (
	"net/url"
	"strings"
)

const sendEndpoint = "https://api.whatsapp.com/send"

// Link builds the click-to-chat URL for the external messaging channel.
// Everything that is not a digit is stripped from the destination, and the
// message text is percent-encoded with %20 for spaces (encodeURIComponent
// behaviour, which the chat endpoint expects).
//
// Handing the URL to the caller is the end of this component's job: there is
// no retry and no delivery confirmation.
func Link(destination, text string) string {
	return sendEndpoint + "?phone=" + digitsOnly(destination) + "&text=" + encodeComponent(text)
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
