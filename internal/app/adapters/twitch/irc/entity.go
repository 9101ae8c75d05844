package irc

// ParamKind discriminates which variant of Params is populated.
type ParamKind int

const (
	ParamFlag ParamKind = iota
	ParamText
	ParamList
)

func (k ParamKind) String() string {
	switch k {
	case ParamText:
		return "text"
	case ParamList:
		return "list"
	}
	return "flag"
}

type Badge struct {
	Name    string
	Enabled bool
}

type Properties struct {
	Badges            []Badge
	DisplayName       string
	IsFirstMessage    bool
	IsUsingOnlyEmotes bool
	IsMod             bool
	IsSubscriber      bool
	IsTurbo           bool
}

type Source struct {
	Nick string
	Host string
}

// Params is a sum type over {text, flag, list}; exactly one variant is
// meaningful per instance, selected by Kind.
type Params struct {
	Kind ParamKind
	Text string
	Flag bool
	List []string
}

type Command struct {
	Name   string
	Params Params
}

// Message is the structured form of one protocol line.
type Message struct {
	Properties Properties
	Source     Source
	Command    Command
	Message    string
}
