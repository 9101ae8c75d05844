package irc

import "strings"

// Parse turns one raw protocol line into a Message. It never fails:
// malformed input yields a Message carrying whatever could be extracted.
//
// Line grammar: [@tags ]:source COMMAND param1 param2 ... [:trailing]
func Parse(line string) Message {
	msg := Message{}
	rest := strings.TrimRight(line, "\r\n")

	if len(rest) > 0 && rest[0] == '@' {
		spaceIdx := strings.IndexByte(rest, ' ')
		if spaceIdx == -1 {
			parseTags(rest[1:], &msg)
			return msg
		}
		parseTags(rest[1:spaceIdx], &msg)
		rest = strings.TrimLeft(rest[spaceIdx+1:], " ")
	}

	if len(rest) > 0 && rest[0] == ':' {
		spaceIdx := strings.IndexByte(rest, ' ')
		if spaceIdx == -1 {
			parseSource(rest[1:], &msg)
			return msg
		}
		parseSource(rest[1:spaceIdx], &msg)
		rest = strings.TrimLeft(rest[spaceIdx+1:], " ")
	}

	if trailingIdx := strings.Index(rest, " :"); trailingIdx != -1 {
		msg.Message = rest[trailingIdx+2:]
		rest = rest[:trailingIdx]
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return msg
	}

	msg.Command.Name = fields[0]
	middles := fields[1:]
	msg.Command.Params = buildParams(msg.Command.Name, middles)

	return msg
}

func buildParams(name string, middles []string) Params {
	p := Params{Kind: kindForCommand(name, middles)}

	switch p.Kind {
	case ParamText:
		p.Text = strings.Join(middles, " ")
	case ParamFlag:
		p.Flag = len(middles) > 0
	case ParamList:
		p.List = append([]string(nil), middles...)
	}

	return p
}

func parseSource(raw string, msg *Message) {
	if bangIdx := strings.IndexByte(raw, '!'); bangIdx != -1 {
		msg.Source.Nick = raw[:bangIdx]
		msg.Source.Host = raw[bangIdx+1:]
		return
	}
	msg.Source.Host = raw
}

func parseTags(rawTags string, msg *Message) {
	start := 0
	for i := 0; i <= len(rawTags); i++ {
		if i != len(rawTags) && rawTags[i] != ';' {
			continue
		}

		tag := rawTags[start:i]
		start = i + 1
		if tag == "" {
			continue
		}

		k, v := tag, ""
		if eq := strings.IndexByte(tag, '='); eq != -1 {
			k, v = tag[:eq], unescapeTag(tag[eq+1:])
		}

		switch k {
		case "badges":
			msg.Properties.Badges = parseBadges(v)
		case "display-name":
			msg.Properties.DisplayName = v
		case "first-msg":
			msg.Properties.IsFirstMessage = v == "1"
		case "emote-only":
			msg.Properties.IsUsingOnlyEmotes = v == "1"
		case "mod":
			msg.Properties.IsMod = v == "1"
		case "subscriber":
			msg.Properties.IsSubscriber = v == "1"
		case "turbo":
			msg.Properties.IsTurbo = v == "1"
		}
	}
}

func parseBadges(raw string) []Badge {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	badges := make([]Badge, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}

		b := Badge{Name: part}
		if slash := strings.IndexByte(part, '/'); slash != -1 {
			b.Name = part[:slash]
			b.Enabled = part[slash+1:] != "" && part[slash+1:] != "0"
		}
		badges = append(badges, b)
	}

	if len(badges) == 0 {
		return nil
	}
	return badges
}

// unescapeTag reverses the tag value escaping of the line grammar
// (\: -> ';', \s -> ' ', \\ -> '\', \r, \n).
func unescapeTag(v string) string {
	if !strings.ContainsRune(v, '\\') {
		return v
	}

	var sb strings.Builder
	sb.Grow(len(v))
	for i := 0; i < len(v); i++ {
		if v[i] != '\\' || i == len(v)-1 {
			sb.WriteByte(v[i])
			continue
		}

		i++
		switch v[i] {
		case ':':
			sb.WriteByte(';')
		case 's':
			sb.WriteByte(' ')
		case '\\':
			sb.WriteByte('\\')
		case 'r':
			sb.WriteByte('\r')
		case 'n':
			sb.WriteByte('\n')
		default:
			sb.WriteByte(v[i])
		}
	}

	return sb.String()
}
