package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe/internal"
)

var rootCmd = &cobra.Command{
	Use:          "tictactoe",
	Short:        "Two player tic-tac-toe",
	Long:         `Play tic-tac-toe in the terminal or serve it to browsers and websocket clients.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over HTTP and websocket",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("config")

		conf := initConfig(path)
		logger := initLogger(conf, os.Stdout)

		if err := app.RunApp(logger, conf); err != nil {
			return fmt.Errorf("app run failed: %w", err)
		}

		return nil
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a local game in the terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("config")

		conf := initConfig(path)

		// stdout belongs to the board, so logs go to a file or nowhere
		var out io.Writer = io.Discard
		if conf.LogFile != "" {
			file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer file.Close()

			out = file
		}

		return app.RunTerminal(initLogger(conf, out))
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "./config.yml", "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd, playCmd)
}
