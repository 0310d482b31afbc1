package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/klondike/game"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"deal": {
		Args: []string{"random", "fixture", "file"},
	},
	"batch": {
		Options: []string{"-threads", "-logfile"},
	},
	"set": {
		Args: settable,
	},
	"help": {
		Args: []string{"deal", "chains", "batch", "set"},
	},
}

var commandNames = []string{
	"deal", "show", "critical", "chains", "next", "autoplay", "history",
	"batch", "set", "help", "exit",
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// Unbalanced quotes while typing.
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		// args typed so far, not counting the one being completed
		typed := fields[1:]
		if !endsWithSpace {
			typed = typed[:len(typed)-1]
		}
		completions = argCompletions(cmdName, typed, prefix)
	}

	var candidates [][]rune
	for _, comp := range completions {
		if strings.HasPrefix(comp, prefix) {
			candidates = append(candidates, []rune(comp[len(prefix):]+" "))
		}
	}
	return candidates, len(prefix)
}

func argCompletions(cmdName string, typed []string, prefix string) []string {
	if len(typed) > 0 {
		switch {
		case cmdName == "deal" && len(typed) == 1 && typed[0] == "fixture":
			return game.FixtureNames()
		case cmdName == "set" && len(typed) == 1 && typed[0] == "debug":
			return boolValues
		}
		if cmdName != "batch" {
			return nil
		}
	}
	meta, ok := commandMetadata[cmdName]
	if !ok {
		return nil
	}
	if strings.HasPrefix(prefix, "-") {
		return meta.Options
	}
	if len(typed) == 0 {
		return meta.Args
	}
	return nil
}
