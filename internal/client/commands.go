package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lk16/cco/internal/models"
	"github.com/lk16/cco/internal/rules"
	"github.com/lk16/cco/internal/ws"
)

var ErrUnknownCommand = errors.New("unknown command")

// Local commands are handled by the client without a websocket request.
const (
	CommandHelp  = "help"
	CommandQuit  = "quit"
	CommandLobby = "lobby"
)

var Usage = []string{
	"new <player> <match>    create a match",
	"join <match id> <player>    join a match",
	"list                    list the matches of the server",
	"lobby                   list the matches of all servers (needs a token)",
	"click <field> [piece]   click a square, e.g. click e2 or click e8 queen",
	"state                   show the match",
	"leave                   leave the match",
	"quit                    exit",
}

// Command is a parsed line of user input. Event is empty for local commands.
type Command struct {
	Name  string
	Event string
	Data  any
}

var argCounts = map[string][2]int{
	CommandHelp:  {0, 0},
	CommandQuit:  {0, 0},
	CommandLobby: {0, 0},
	"new":        {2, 2},
	"join":       {2, 2},
	"list":       {0, 0},
	"state":      {0, 0},
	"leave":      {0, 0},
	"click":      {1, 2},
}

// ParseCommand parses a line of user input.
func ParseCommand(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}

	name, args := strings.ToLower(fields[0]), fields[1:]

	counts, ok := argCounts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if len(args) < counts[0] || len(args) > counts[1] {
		return nil, fmt.Errorf("%s: unexpected number of arguments: %d", name, len(args))
	}

	cmd := &Command{Name: name}

	switch name {
	case "new":
		cmd.Event = ws.EventNewMatch
		cmd.Data = models.NewMatchRequest{PlayerName: args[0], MatchName: args[1]}
	case "join":
		cmd.Event = ws.EventJoinMatch
		cmd.Data = models.JoinMatchRequest{MatchID: args[0], PlayerName: args[1]}
	case "list":
		cmd.Event = ws.EventGetMatches
	case "state":
		cmd.Event = ws.EventGetState
	case "leave":
		cmd.Event = ws.EventLeaveMatch
	case "click":
		pos, err := rules.FieldToPosition(strings.ToLower(args[0]))
		if err != nil {
			return nil, err
		}

		input := models.InputRequest{Row: pos.Row, Col: pos.Col}
		if len(args) == 2 {
			input.Promotion = strings.ToLower(args[1])
		}
		if _, err := input.Validate(); err != nil {
			return nil, err
		}

		cmd.Event = ws.EventInput
		cmd.Data = input
	}

	return cmd, nil
}
