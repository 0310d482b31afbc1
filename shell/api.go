package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/domino14/klondike/automatic"
	"github.com/domino14/klondike/board"
	"github.com/domino14/klondike/config"
	"github.com/domino14/klondike/game"
)

const defaultChainsShown = 10

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

// settable lists the config keys the set command may change.
var settable = []string{
	config.ConfigTurnLimit, config.ConfigMaxChainsPerCard, config.ConfigSeed,
	config.ConfigBatchGames, config.ConfigBatchThreads, config.ConfigDebug,
}

func (sc *ShellController) deal(cmd *shellcmd) (*Response, error) {
	var (
		g   *game.Game
		err error
	)
	what := "random"
	if len(cmd.args) > 0 {
		what = cmd.args[0]
	}
	switch what {
	case "random":
		var seed uint64
		if len(cmd.args) > 1 {
			seed, err = strconv.ParseUint(cmd.args[1], 10, 64)
			if err != nil {
				return nil, err
			}
		}
		g, err = game.NewShuffled(seed)
	case "fixture", "file":
		if len(cmd.args) < 2 {
			if what == "fixture" {
				return nil, errors.New("usage: deal fixture <name>")
			}
			return nil, errors.New("usage: deal file <path>")
		}
		var d *game.Deal
		if what == "fixture" {
			d, err = game.Fixture(cmd.args[1])
		} else {
			d, err = game.LoadDealFile(cmd.args[1])
		}
		if err != nil {
			return nil, err
		}
		g, err = game.NewFromDeal(d)
	default:
		return nil, errors.New("usage: deal [random [seed]|fixture <name>|file <path>]")
	}
	if err != nil {
		return nil, err
	}
	g.SetTurnLimit(sc.config.GetInt(config.ConfigTurnLimit))
	g.SetChainLimit(sc.config.GetInt(config.ConfigMaxChainsPerCard))
	sc.game = g
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) critical(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	crit := sc.game.Analyze().CriticalCards()
	if len(crit) == 0 {
		return msg("no critical cards"), nil
	}
	names := lo.Map(crit, func(c *board.Card, _ int) string {
		return fmt.Sprintf("%v (%v)", c.ID(), c.Pile())
	})
	return msg(strings.Join(names, "\n")), nil
}

func (sc *ShellController) chains(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	n := defaultChainsShown
	if len(cmd.args) > 0 {
		var err error
		n, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	t := sc.game.Analyze()
	all := t.Chains()
	if len(all) == 0 {
		return msg("no chains; the game is stuck"), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d critical card(s), %d chain(s)\n", len(t.CriticalCards()), len(all))
	for i, c := range all {
		if i >= n {
			break
		}
		fmt.Fprintf(&sb, "%3d. [%d] %v\n", i+1, len(c), c)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) next(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	chain, err := sc.game.NextTurn()
	if err != nil {
		return nil, err
	}
	if chain == nil {
		return msg("game over: " + sc.game.Outcome().String()), nil
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	outcome, err := sc.game.Play(sc.ctx)
	if err != nil {
		return nil, err
	}
	return msg(sc.game.HistoryText() + sc.game.ToDisplayText() +
		"Outcome: " + outcome.String()), nil
}

func (sc *ShellController) history(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(sc.game.History()) == 0 {
		return msg("no turns played"), nil
	}
	return msg(strings.TrimRight(sc.game.HistoryText(), "\n")), nil
}

func (sc *ShellController) batch(cmd *shellcmd) (*Response, error) {
	n := sc.config.GetInt(config.ConfigBatchGames)
	if len(cmd.args) > 0 {
		var err error
		n, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigBatchThreads))
	if err != nil {
		return nil, err
	}
	var turnLog io.Writer
	if path := cmd.options.String("logfile"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		turnLog = f
	}
	summary, err := automatic.PlayBatch(sc.ctx, sc.config, n, threads, turnLog)
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(summary.String(), "\n")), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		var sb strings.Builder
		for _, k := range settable {
			fmt.Fprintf(&sb, "%-20s %v\n", k, sc.config.Get(k))
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	key := cmd.args[0]
	if !lo.Contains(settable, key) {
		return nil, fmt.Errorf("cannot set %q; settable: %s", key, strings.Join(settable, ", "))
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s = %v", key, sc.config.Get(key))), nil
	}
	value := cmd.args[1]
	switch key {
	case config.ConfigDebug:
		on, err := strconv.ParseBool(value)
		if err != nil {
			return nil, err
		}
		sc.config.Set(key, on)
		if on {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	case config.ConfigSeed:
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, err
		}
		sc.config.Set(key, seed)
	default:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("%s must be positive", key)
		}
		sc.config.Set(key, n)
	}
	if sc.game != nil {
		sc.game.SetTurnLimit(sc.config.GetInt(config.ConfigTurnLimit))
		sc.game.SetChainLimit(sc.config.GetInt(config.ConfigMaxChainsPerCard))
	}
	return msg("set " + key + " to " + value), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usage()), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}
