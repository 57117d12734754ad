package shell

import (
	"fmt"
	"strconv"
	"strings"

	"binopt/trade"
)

// Command is a parsed user action. The session core only ever sees
// typed values; all string handling stops here.
type Command interface{ isCommand() }

type Record struct{ Result trade.Result }

type Undo struct{}

type SetRisk struct{ Percent float64 }

type SetPayout struct{ Percent float64 }

// Reset discards the running session and starts a fresh one. A zero
// Balance reuses the previous starting balance.
type Reset struct{ Balance float64 }

type Export struct{}

// History prints the full trade log.
type History struct{}

// Quit ends the shell, optionally exporting first (":wq").
type Quit struct{ ExportFirst bool }

type Help struct{}

func (Record) isCommand()    {}
func (Undo) isCommand()      {}
func (SetRisk) isCommand()   {}
func (SetPayout) isCommand() {}
func (Reset) isCommand()     {}
func (Export) isCommand()    {}
func (History) isCommand()   {}
func (Quit) isCommand()      {}
func (Help) isCommand()      {}

// Parse maps one input line to a Command. Single letters are trade
// actions; lines starting with ':' are colon commands. A blank line
// parses to nil, which just redraws.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	if !strings.HasPrefix(line, ":") {
		switch line {
		case "w":
			return Record{Result: trade.Win}, nil
		case "l":
			return Record{Result: trade.Loss}, nil
		case "p":
			return Record{Result: trade.Push}, nil
		case "u":
			return Undo{}, nil
		case "h":
			return History{}, nil
		case "q":
			return Quit{}, nil
		}
		return nil, fmt.Errorf("unknown key %q (try :help)", line)
	}

	parts := strings.Fields(line[1:])
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	switch parts[0] {
	case "q", "quit":
		return Quit{}, nil
	case "wq":
		return Quit{ExportFirst: true}, nil
	case "w", "write":
		return Export{}, nil
	case "help":
		return Help{}, nil
	case "risk":
		v, err := parseValue(parts, "risk")
		if err != nil {
			return nil, err
		}
		return SetRisk{Percent: v}, nil
	case "payout":
		v, err := parseValue(parts, "payout")
		if err != nil {
			return nil, err
		}
		return SetPayout{Percent: v}, nil
	case "reset":
		if len(parts) == 1 {
			return Reset{}, nil
		}
		v, err := parseValue(parts, "reset")
		if err != nil {
			return nil, err
		}
		return Reset{Balance: v}, nil
	}
	return nil, fmt.Errorf("unknown command %q (try :help)", parts[0])
}

func parseValue(parts []string, name string) (float64, error) {
	if len(parts) < 2 {
		return 0, fmt.Errorf("usage: :%s <value>", name)
	}
	v, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", name, parts[1])
	}
	return v, nil
}
