package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v3"

	"github.com/domino14/klondike/config"
	"github.com/domino14/klondike/game"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"batch 20 -logfile /path/to/log.csv",
			&shellcmd{"batch", []string{"20"}, CmdOptions{"logfile": {"/path/to/log.csv"}}},
			nil},
		{"deal fixture fixture1",
			&shellcmd{"deal", []string{"fixture", "fixture1"}, CmdOptions{}},
			nil},
		{`deal file "my deals/one.yaml" `,
			&shellcmd{"deal", []string{"file", "my deals/one.yaml"}, CmdOptions{}},
			nil},
		{"batch -threads 2 -1", &shellcmd{"batch", []string{"-1"}, CmdOptions{"threads": {"2"}}}, nil},
		{"batch 10 -threads",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func testController() (*ShellController, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigTurnLimit, 3)
	return newController(cfg, &buf), &buf
}

func run(sc *ShellController, line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	return sc.dispatch(cmd)
}

func TestNeedsGame(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	for _, line := range []string{"show", "critical", "chains", "next", "autoplay", "history"} {
		_, err := run(sc, line)
		is.Equal(err, errNoGame)
	}
}

func TestDealAndPlay(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()

	resp, err := run(sc, "deal fixture fixture1")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Game fixture1, turn 0 of 3"))
	is.Equal(sc.game.TurnLimit(), 3)

	resp, err = run(sc, "critical")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "D10 (1)"))

	resp, err = run(sc, "chains 1")
	is.NoErr(err)
	lines := strings.Split(resp.message, "\n")
	is.Equal(len(lines), 2)
	is.True(strings.HasPrefix(lines[1], "  1. "))

	resp, err = run(sc, "history")
	is.NoErr(err)
	is.Equal(resp.message, "no turns played")

	_, err = run(sc, "next")
	is.NoErr(err)
	is.Equal(sc.game.Turn(), 1)

	resp, err = run(sc, "autoplay")
	is.NoErr(err)
	is.True(!sc.game.Playing())
	is.True(strings.Contains(resp.message, "Outcome: "+sc.game.Outcome().String()))

	_, err = run(sc, "next")
	is.True(err != nil)
}

func TestDealVariants(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()

	_, err := run(sc, "deal random 42")
	is.NoErr(err)
	is.Equal(sc.game.Name(), "seed-42")

	_, err = run(sc, "deal")
	is.NoErr(err)
	is.Equal(sc.game.Name(), "random")

	d, _ := game.Fixture("fixture2")
	path := filepath.Join(t.TempDir(), "deal.yaml")
	data, err := yaml.Marshal(&game.Deal{Name: "from-file", Cards: d.Cards})
	is.NoErr(err)
	is.NoErr(os.WriteFile(path, data, 0o644))
	_, err = run(sc, "deal file "+path)
	is.NoErr(err)
	is.Equal(sc.game.Name(), "from-file")

	_, err = run(sc, "deal fixture")
	is.True(err != nil)
	_, err = run(sc, "deal fixture nope")
	is.True(err != nil)
	_, err = run(sc, "deal sideways")
	is.True(err != nil)
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	_, err := run(sc, "deal fixture fixture2")
	is.NoErr(err)

	resp, err := run(sc, "set turn-limit 7")
	is.NoErr(err)
	is.Equal(resp.message, "set turn-limit to 7")
	is.Equal(sc.config.GetInt(config.ConfigTurnLimit), 7)
	is.Equal(sc.game.TurnLimit(), 7)

	resp, err = run(sc, "set turn-limit")
	is.NoErr(err)
	is.Equal(resp.message, "turn-limit = 7")

	resp, err = run(sc, "set")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "max-chains-per-card"))

	_, err = run(sc, "set seed 12")
	is.NoErr(err)
	is.Equal(sc.config.GetUint64(config.ConfigSeed), uint64(12))

	_, err = run(sc, "set turn-limit 0")
	is.True(err != nil)
	_, err = run(sc, "set turn-limit many")
	is.True(err != nil)
	_, err = run(sc, "set deal-file x")
	is.True(err != nil)
}

func TestBatch(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	sc.config.Set(config.ConfigSeed, 5)
	logpath := filepath.Join(t.TempDir(), "turns.csv")

	resp, err := run(sc, "batch 3 -threads 2 -logfile "+logpath)
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "3 games"))

	data, err := os.ReadFile(logpath)
	is.NoErr(err)
	is.True(strings.HasPrefix(string(data), "game,turn,"))
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	resp, err := run(sc, "help")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "Commands:"))

	resp, err = run(sc, "help deal")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "deal ["))

	resp, err = run(sc, "help juggling")
	is.NoErr(err)
	is.Equal(resp.message, "There is no help text for the topic juggling")
}

func TestExecute(t *testing.T) {
	is := is.New(t)
	sc, buf := testController()
	sig := make(chan os.Signal, 1)

	sc.Execute(sig, "frobnicate")
	is.True(strings.Contains(buf.String(), `Error: unrecognized command "frobnicate"`))

	buf.Reset()
	sc.Execute(sig, "deal fixture fixture1")
	is.True(strings.Contains(buf.String(), "Game fixture1"))

	sc.Execute(sig, "exit")
	is.Equal(<-sig, syscall.SIGINT)
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	c := NewShellCompleter(sc)

	complete := func(line string) []string {
		cands, _ := c.Do([]rune(line), len(line))
		var out []string
		for _, r := range cands {
			out = append(out, string(r))
		}
		return out
	}
	is.Equal(complete("ch"), []string{"ains "})
	is.Equal(complete("deal "), []string{"random ", "fixture ", "file "})
	is.Equal(complete("deal fixture fix"), []string{"ture1 ", "ture2 "})
	is.Equal(complete("batch 10 -t"), []string{"hreads "})
	is.Equal(complete("set debug "), []string{"true ", "false "})
	is.Equal(complete("show "), nil)
}
