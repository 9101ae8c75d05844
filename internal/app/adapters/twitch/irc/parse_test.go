package irc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Privmsg(t *testing.T) {
	line := "@badges=moderator/1,subscriber/0;display-name=SomeUser;first-msg=1;mod=1;subscriber=0;turbo=0 :someuser!someuser@someuser.tmi.twitch.tv PRIVMSG #scene42 :hello world"
	msg := Parse(line)

	assert.Equal(t, "PRIVMSG", msg.Command.Name)
	assert.Equal(t, ParamText, msg.Command.Params.Kind)
	assert.Equal(t, "#scene42", msg.Command.Params.Text)
	assert.Equal(t, "hello world", msg.Message)

	assert.Equal(t, "someuser", msg.Source.Nick)
	assert.Equal(t, "someuser@someuser.tmi.twitch.tv", msg.Source.Host)

	assert.Equal(t, "SomeUser", msg.Properties.DisplayName)
	assert.True(t, msg.Properties.IsFirstMessage)
	assert.True(t, msg.Properties.IsMod)
	assert.False(t, msg.Properties.IsSubscriber)
	assert.False(t, msg.Properties.IsTurbo)

	assert.Equal(t, []Badge{
		{Name: "moderator", Enabled: true},
		{Name: "subscriber", Enabled: false},
	}, msg.Properties.Badges)
}

func TestParse_ParamVariants(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantCmd  string
		wantKind ParamKind
		wantText string
		wantFlag bool
		wantList []string
	}{
		{
			name:     "join_carries_flag",
			line:     ":bot!bot@bot.tmi.twitch.tv JOIN #scene42",
			wantCmd:  "JOIN",
			wantKind: ParamFlag,
			wantFlag: true,
		},
		{
			name:     "ping_carries_text_trailing",
			line:     "PING :tmi.twitch.tv",
			wantCmd:  "PING",
			wantKind: ParamText,
			wantText: "",
		},
		{
			name:     "cap_ack_carries_list",
			line:     ":tmi.twitch.tv CAP * ACK :twitch.tv/tags",
			wantCmd:  "CAP",
			wantKind: ParamList,
			wantList: []string{"*", "ACK"},
		},
		{
			name:     "notice_carries_text",
			line:     ":tmi.twitch.tv NOTICE * :Login authentication failed",
			wantCmd:  "NOTICE",
			wantKind: ParamText,
			wantText: "*",
		},
		{
			name:     "whisper_carries_text",
			line:     ":other!other@other.tmi.twitch.tv WHISPER bot :psst",
			wantCmd:  "WHISPER",
			wantKind: ParamText,
			wantText: "bot",
		},
		{
			name:     "reconnect_carries_flag",
			line:     ":tmi.twitch.tv RECONNECT",
			wantCmd:  "RECONNECT",
			wantKind: ParamFlag,
			wantFlag: false,
		},
		{
			name:     "welcome_numeric_carries_text",
			line:     ":tmi.twitch.tv 001 bot :Welcome, GLHF!",
			wantCmd:  "001",
			wantKind: ParamText,
			wantText: "bot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Parse(tt.line)

			assert.Equal(t, tt.wantCmd, msg.Command.Name)
			assert.Equal(t, tt.wantKind, msg.Command.Params.Kind)
			assert.Equal(t, tt.wantText, msg.Command.Params.Text)
			assert.Equal(t, tt.wantFlag, msg.Command.Params.Flag)
			assert.Equal(t, tt.wantList, msg.Command.Params.List)
		})
	}
}

func TestParse_UnknownCommands(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind ParamKind
	}{
		{name: "no_params_is_flag", line: "FOOBAR", wantKind: ParamFlag},
		{name: "one_param_is_text", line: "FOOBAR #scene42", wantKind: ParamText},
		{name: "many_params_is_list", line: "FOOBAR a b c", wantKind: ParamList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Parse(tt.line)
			assert.Equal(t, "FOOBAR", msg.Command.Name)
			assert.Equal(t, tt.wantKind, msg.Command.Params.Kind)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "empty", line: ""},
		{name: "only_whitespace", line: "   "},
		{name: "only_tags", line: "@badges=moderator/1"},
		{name: "only_source", line: ":someone!someone@host"},
		{name: "tags_without_command", line: "@display-name=Foo "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				msg := Parse(tt.line)
				assert.Empty(t, msg.Command.Name)
			})
		})
	}
}

func TestParse_TagUnescaping(t *testing.T) {
	msg := Parse(`@display-name=Some\sUser\:\\ :u!u@host PRIVMSG #c :x`)
	assert.Equal(t, `Some User;\`, msg.Properties.DisplayName)
}

func TestParse_AbsentTagsDefaultFalse(t *testing.T) {
	msg := Parse(":u!u@host PRIVMSG #c :x")

	assert.False(t, msg.Properties.IsFirstMessage)
	assert.False(t, msg.Properties.IsUsingOnlyEmotes)
	assert.False(t, msg.Properties.IsMod)
	assert.False(t, msg.Properties.IsSubscriber)
	assert.False(t, msg.Properties.IsTurbo)
	assert.Nil(t, msg.Properties.Badges)
}

func BenchmarkParse(b *testing.B) {
	line := "@badges=moderator/1,subscriber/12;display-name=SomeUser;first-msg=0;mod=1;subscriber=1;turbo=0 :someuser!someuser@someuser.tmi.twitch.tv PRIVMSG #scene42 :Lorem ipsum dolor sit amet, consectetur adipiscing elit"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Parse(line)
	}
}
