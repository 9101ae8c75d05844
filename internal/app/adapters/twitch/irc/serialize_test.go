package irc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerializeRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantCmd    string
		wantParams Params
		wantMsg    string
	}{
		{
			name:       "pass",
			line:       SerializePass("tok-abc"),
			wantCmd:    "PASS",
			wantParams: Params{Kind: ParamText, Text: "oauth:tok-abc"},
		},
		{
			name:       "nick",
			line:       SerializeNick("SomeBot"),
			wantCmd:    "NICK",
			wantParams: Params{Kind: ParamText, Text: "somebot"},
		},
		{
			name:       "cap_req",
			line:       SerializeCapReq("twitch.tv/tags", "twitch.tv/commands"),
			wantCmd:    "CAP",
			wantParams: Params{Kind: ParamList, List: []string{"REQ"}},
			wantMsg:    "twitch.tv/tags twitch.tv/commands",
		},
		{
			name:       "join",
			line:       SerializeJoin("Scene42"),
			wantCmd:    "JOIN",
			wantParams: Params{Kind: ParamFlag, Flag: true},
		},
		{
			name:       "privmsg",
			line:       SerializePrivmsg("scene42", "hello"),
			wantCmd:    "PRIVMSG",
			wantParams: Params{Kind: ParamText, Text: "#scene42"},
			wantMsg:    "hello",
		},
		{
			name:       "pong",
			line:       SerializePong("tmi.twitch.tv"),
			wantCmd:    "PONG",
			wantParams: Params{Kind: ParamText},
			wantMsg:    "tmi.twitch.tv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Parse(tt.line)

			assert.Equal(t, tt.wantCmd, msg.Command.Name)
			assert.Equal(t, tt.wantParams, msg.Command.Params)
			assert.Equal(t, tt.wantMsg, msg.Message)
		})
	}
}

func TestSerializePrivmsg_StripsLineBreaks(t *testing.T) {
	line := SerializePrivmsg("scene42", "a\r\nQUIT")
	msg := Parse(line)

	assert.Equal(t, "PRIVMSG", msg.Command.Name)
	assert.Equal(t, "a  QUIT", msg.Message)
}

func TestNormalizeChannel(t *testing.T) {
	assert.Equal(t, "#scene42", NormalizeChannel("Scene42"))
	assert.Equal(t, "#scene42", NormalizeChannel("#scene42"))
	assert.Equal(t, "#scene42", NormalizeChannel(" scene42 "))
}
