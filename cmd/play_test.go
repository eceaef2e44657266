package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/they4kman/sweepcore/config"
	"github.com/they4kman/sweepcore/game"
)

type idleScheduler struct{}

func (idleScheduler) Every(time.Duration, func()) func() {
	return func() {}
}

func newCornersGame(t *testing.T) *game.Game {
	t.Helper()

	gameConfig, err := (&game.Snapshot{Board: "O.O\n...\n..."}).GameConfig()
	if err != nil {
		t.Fatal(err)
	}
	logger, _ := test.NewNullLogger()
	gameConfig.Scheduler = idleScheduler{}
	gameConfig.Logger = logger

	g, err := game.NewGame(gameConfig)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func runSession(t *testing.T, g *game.Game, input string) string {
	t.Helper()

	var out bytes.Buffer
	if err := newSession(g, strings.NewReader(input), &out).Run(); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestSessionWin(t *testing.T) {
	g := newCornersGame(t)
	out := runSession(t, g, "open 0 2\nflag 0 0\nf 2 0\no 1 0\nquit\nopen 1 1\n")

	if !strings.Contains(out, "002   in progress   000s\n###\n121\n...\n") {
		t.Fatalf("missing board after the first open:\n%s", out)
	}
	if !strings.Contains(out, "WIN! cleared in 0s") {
		t.Fatalf("missing win message:\n%s", out)
	}
	if !strings.HasSuffix(out, "000   won   000s\nF2F\n121\n...\n> ") {
		t.Fatalf("unexpected final board:\n%s", out)
	}
	if g.State() != game.Won {
		t.Fatalf("state = %s", g.State())
	}
}

func TestSessionLoss(t *testing.T) {
	g := newCornersGame(t)
	out := runSession(t, g, "o 0 2\nf 0 0\nf 1 0\nc 1 1\n")

	if !strings.Contains(out, "LOSE :(") {
		t.Fatalf("missing loss message:\n%s", out)
	}
	if !strings.Contains(out, "mine at (2, 0), 2 mines in total, 1 wrong flags") {
		t.Fatalf("missing fail state:\n%s", out)
	}
	if !strings.Contains(out, "000   lost   000s\nFx@\n121\n...\n") {
		t.Fatalf("lost board does not expose the mines:\n%s", out)
	}
}

func TestSessionCommands(t *testing.T) {
	g := newCornersGame(t)
	out := runSession(t, g, "\nhelp\nopen 1\nopen a 1\nopen 5 5\nopen 0 2\npreview 1 1\nsnapshot\nreset\nshow\n")

	for _, want := range []string{
		sessionHelp,
		"expected X Y",
		`invalid X "a"`,
		"invalid cell position",
		"[(0, 0) (1, 0) (2, 0)]",
		"seed: ",
		"002   not started   000s\n###\n###\n###\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if g.State() != game.NotStarted {
		t.Fatalf("state after reset = %s", g.State())
	}
}

func TestSessionClicks(t *testing.T) {
	g := newCornersGame(t)

	// 16px cells with row 0 on top: y 40 is the first row, y 8 the last
	out := runSession(t, g, strings.Join([]string{
		"click 8 8",
		"click 8 40 right",
		"click 40 40 right",
		"click 24 24 middle",
		"click 48 8",
		"click 8 8 double",
		"click x 8",
		"click 8",
	}, "\n")+"\n")

	if !strings.Contains(out, "002   in progress   000s\n###\n121\n...\n") {
		t.Fatalf("bottom-left click did not open (0, 2):\n%s", out)
	}
	if !strings.Contains(out, "WIN!") || !strings.Contains(out, "000   won   000s\nF2F\n121\n...\n") {
		t.Fatalf("clicks did not win the game:\n%s", out)
	}
	for _, want := range []string{
		"point (48, 8) is outside the board",
		`unknown button "double"`,
		`invalid PX "x"`,
		"expected PX PY [left|right|middle]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestBuildGameConfig(t *testing.T) {
	saved := difficulty
	defer func() { difficulty = saved }()
	difficulty = config.Beginner

	gameConfig, err := buildGameConfig(rootCmd)
	if err != nil {
		t.Fatal(err)
	}
	if gameConfig.Grid != (game.GridConfig{Width: 9, Height: 9, MineRatio: 0.12}) {
		t.Fatalf("grid = %+v", gameConfig.Grid)
	}

	difficulty = "nightmare"
	if _, err := buildGameConfig(rootCmd); err == nil {
		t.Fatal("expected error for an unknown difficulty")
	}
}

func TestBuildGameConfigFromLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte("seed: 7\nboard: |\n  O#\n  ##\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	saved := layoutFile
	defer func() { layoutFile = saved }()
	layoutFile = path

	gameConfig, err := buildGameConfig(rootCmd)
	if err != nil {
		t.Fatal(err)
	}
	if gameConfig.Grid.Mines != 1 || gameConfig.Seed != 7 {
		t.Fatalf("config = %+v", gameConfig)
	}
	if _, ok := gameConfig.Placer.(game.FixedPlacer); !ok {
		t.Fatalf("placer = %T, want game.FixedPlacer", gameConfig.Placer)
	}
}

func TestLogLevelValue(t *testing.T) {
	var level logLevelValue
	if err := level.Set("debug"); err != nil {
		t.Fatal(err)
	}
	if logrus.Level(level) != logrus.DebugLevel || level.String() != "debug" {
		t.Fatalf("level = %v", level.String())
	}
	if err := level.Set("loud"); err == nil {
		t.Fatal("expected error for an unknown level")
	}
}
