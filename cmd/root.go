package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/they4kman/sweepcore/config"
	"github.com/they4kman/sweepcore/director/random"
	"github.com/they4kman/sweepcore/game"
)

var (
	envConfig, envErr = config.ParseEnv()

	difficulty       = envConfig.Difficulty
	presetsFile      = envConfig.PresetsFile
	layoutFile       string
	gridConfig       game.GridConfig
	seed             = envConfig.Seed
	useDirector      = false
	directorInterval = 200 * time.Millisecond
	logLevel         = logLevelValue(logrus.WarnLevel)
)

var rootCmd = &cobra.Command{
	Use:   "gosweep",
	Short: "Play manual or computer-driven Minesweeper in the terminal",
	Long: `gosweep is a Minesweeper game which supports human- or
computer-driven playing.

Run with no arguments to play manually, typing commands such as
	open 3 4
	flag 0 0
	chord 3 4

Use the director flag to make the computer play for you
	gosweep --director
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envErr != nil {
			return envErr
		}
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.Level(logLevel))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		gameConfig, err := buildGameConfig(cmd)
		if err != nil {
			return err
		}

		g, err := game.NewGame(gameConfig)
		if err != nil {
			return errors.Wrap(err, "create game")
		}

		session := newSession(g, cmd.InOrStdin(), cmd.OutOrStdout())
		if !useDirector {
			return session.Run()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		session.Watch()
		director := random.New(g, g.Seed())
		if err := director.ActContinuously(ctx, directorInterval); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		session.PrintBoard()
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// buildGameConfig resolves the grid from a layout file, or else from the
// difficulty preset with any explicit dimension flags applied on top.
func buildGameConfig(cmd *cobra.Command) (game.GameConfig, error) {
	if layoutFile != "" {
		in, err := os.ReadFile(layoutFile)
		if err != nil {
			return game.GameConfig{}, errors.Wrap(err, "read layout")
		}
		snapshot, err := game.LoadSnapshot(string(in))
		if err != nil {
			return game.GameConfig{}, errors.Wrapf(err, "load layout %s", layoutFile)
		}
		return snapshot.GameConfig()
	}

	presets, err := config.LoadPresets(presetsFile)
	if err != nil {
		return game.GameConfig{}, err
	}
	preset, err := presets.Lookup(difficulty)
	if err != nil {
		return game.GameConfig{}, err
	}

	gameConfig := game.NewGameConfig()
	gameConfig.Grid = preset.Grid
	gameConfig.Seed = seed

	flags := cmd.Flags()
	if flags.Changed("width") {
		gameConfig.Grid.Width = gridConfig.Width
	}
	if flags.Changed("height") {
		gameConfig.Grid.Height = gridConfig.Height
	}
	if flags.Changed("ratio") {
		gameConfig.Grid.MineRatio = gridConfig.MineRatio
		gameConfig.Grid.Mines = 0
	}
	if flags.Changed("mines") {
		gameConfig.Grid.Mines = gridConfig.Mines
	}

	return gameConfig, gameConfig.Grid.Validate()
}

type logLevelValue logrus.Level

func (level *logLevelValue) String() string {
	return logrus.Level(*level).String()
}

func (level *logLevelValue) Set(value string) error {
	parsed, err := logrus.ParseLevel(value)
	if err != nil {
		return fmt.Errorf("invalid log level")
	}
	*level = logLevelValue(parsed)
	return nil
}

func (level *logLevelValue) Type() string {
	return "logrus.Level"
}

func init() {
	if parsed, err := logrus.ParseLevel(envConfig.LogLevel); err == nil {
		logLevel = logLevelValue(parsed)
	}

	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.Flags().Bool("help", false, "Help for this command")

	rootCmd.PersistentFlags().StringVar(&presetsFile, "presets", presetsFile, "YAML file of extra difficulty presets")
	rootCmd.PersistentFlags().Var(&logLevel, "log-level", "Log level: panic, fatal, error, warning, info or debug")

	rootCmd.Flags().StringVar(&difficulty, "difficulty", difficulty, "Difficulty preset to play (see the presets command)")
	rootCmd.Flags().IntVarP(&gridConfig.Width, "width", "w", 0, "Width of game board, in cells (overrides the preset)")
	rootCmd.Flags().IntVarP(&gridConfig.Height, "height", "h", 0, "Height of game board, in cells (overrides the preset)")
	rootCmd.Flags().Float64VarP(&gridConfig.MineRatio, "ratio", "r", 0, "Fraction of cells holding a mine (overrides the preset)")
	rootCmd.Flags().IntVarP(&gridConfig.Mines, "mines", "m", 0, "Exact number of mines (overrides the ratio)")
	rootCmd.Flags().Int64Var(&seed, "seed", seed, "Seed for mine placement; 0 picks one at random")
	rootCmd.Flags().StringVar(&layoutFile, "layout", "", "YAML snapshot whose mines are used instead of random placement")
	rootCmd.Flags().BoolVarP(&useDirector, "director", "d", false, "Make the computer play")
	rootCmd.Flags().DurationVar(&directorInterval, "director-interval", directorInterval, "Delay between the computer's moves")

	rootCmd.AddCommand(presetsCmd)
}
