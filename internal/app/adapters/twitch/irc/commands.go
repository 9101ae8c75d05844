package irc

// paramKinds fixes the parameter variant for every command this core
// understands. Unknown commands fall back to whatever shape the middle
// parameters structurally have.
var paramKinds = map[string]ParamKind{
	"PRIVMSG":         ParamText,
	"WHISPER":         ParamText,
	"NOTICE":          ParamText,
	"USERNOTICE":      ParamText,
	"PING":            ParamText,
	"PONG":            ParamText,
	"PASS":            ParamText,
	"NICK":            ParamText,
	"USERSTATE":       ParamText,
	"ROOMSTATE":       ParamText,
	"CLEARCHAT":       ParamText,
	"001":             ParamText,
	"JOIN":            ParamFlag,
	"PART":            ParamFlag,
	"RECONNECT":       ParamFlag,
	"GLOBALUSERSTATE": ParamFlag,
	"CAP":             ParamList,
	"353":             ParamList,
	"366":             ParamList,
}

func kindForCommand(name string, middles []string) ParamKind {
	if kind, ok := paramKinds[name]; ok {
		return kind
	}

	switch {
	case len(middles) > 1:
		return ParamList
	case len(middles) == 1:
		return ParamText
	}
	return ParamFlag
}
