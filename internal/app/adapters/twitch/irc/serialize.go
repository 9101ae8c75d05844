package irc

import "strings"

// NormalizeChannel lowercases a channel name and ensures the '#' prefix the
// wire grammar expects.
func NormalizeChannel(channel string) string {
	channel = strings.ToLower(strings.TrimSpace(channel))
	if !strings.HasPrefix(channel, "#") {
		channel = "#" + channel
	}
	return channel
}

func SerializePass(token string) string {
	return "PASS oauth:" + sanitize(token)
}

func SerializeNick(nick string) string {
	return "NICK " + strings.ToLower(sanitize(nick))
}

func SerializeCapReq(capabilities ...string) string {
	return "CAP REQ :" + strings.Join(capabilities, " ")
}

func SerializeJoin(channel string) string {
	return "JOIN " + NormalizeChannel(channel)
}

func SerializePart(channel string) string {
	return "PART " + NormalizeChannel(channel)
}

func SerializePrivmsg(channel, text string) string {
	return "PRIVMSG " + NormalizeChannel(channel) + " :" + sanitize(text)
}

func SerializePong(payload string) string {
	if payload == "" {
		payload = "tmi.twitch.tv"
	}
	return "PONG :" + sanitize(payload)
}

// sanitize strips line breaks so caller-supplied text cannot smuggle extra
// protocol lines into the stream.
func sanitize(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
