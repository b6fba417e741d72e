package protocol

import (
	"errors"
	"strings"
)

// ErrBadCommand reports an unknown verb or a wrong argument count. The
// connection stays open; the dispatcher answers with ERROR.
var ErrBadCommand = errors.New("bad command")

// CmdKind discriminates parsed client lines.
type CmdKind int

const (
	CmdChat CmdKind = iota
	CmdNick
	CmdJoin
	CmdLeave
	CmdBye
	CmdPriv
)

// Command is one decoded client line. Only the fields of the selected
// kind are meaningful.
type Command struct {
	Kind CmdKind
	Name string // CmdNick
	Room string // CmdJoin
	To   string // CmdPriv
	Text string // CmdChat, CmdPriv
}

// Parse classifies one decoded line. A line is a command iff it begins
// with '/' and its second byte is not also '/'; a leading "//" is the
// escape for chat text that starts with a literal slash.
func Parse(line string) (Command, error) {
	if strings.HasPrefix(line, "/") && !strings.HasPrefix(line, "//") {
		return parseCommand(line[1:])
	}
	return Command{Kind: CmdChat, Text: strings.TrimPrefix(line, "/")}, nil
}

func parseCommand(line string) (Command, error) {
	args := strings.Split(line, " ")
	switch args[0] {
	case "nick":
		if len(args) != 2 || args[1] == "" {
			return Command{}, ErrBadCommand
		}
		return Command{Kind: CmdNick, Name: args[1]}, nil
	case "join":
		if len(args) != 2 || args[1] == "" {
			return Command{}, ErrBadCommand
		}
		return Command{Kind: CmdJoin, Room: args[1]}, nil
	case "leave":
		if len(args) != 1 {
			return Command{}, ErrBadCommand
		}
		return Command{Kind: CmdLeave}, nil
	case "bye":
		if len(args) != 1 {
			return Command{}, ErrBadCommand
		}
		return Command{Kind: CmdBye}, nil
	case "priv":
		if len(args) < 3 || args[1] == "" {
			return Command{}, ErrBadCommand
		}
		return Command{Kind: CmdPriv, To: args[1], Text: strings.Join(args[2:], " ")}, nil
	default:
		return Command{}, ErrBadCommand
	}
}
