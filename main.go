package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"gridsnap/app"
	"gridsnap/config"
	"gridsnap/log"
	"gridsnap/monitor"
	"gridsnap/platform"
	"gridsnap/ui"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	layoutFlag string
	applyFlag  bool
	copyFlag   bool
	onceFlag   bool
	startFlag  string

	rootCmd = &cobra.Command{
		Use:   "gridsnap",
		Short: "gridsnap - place windows on a keyboard grid across monitors.",
		Long: `gridsnap shows a grid over every monitor. Press the key of one cell, then
the key of another, and the active window covers both and everything between.
Arrow keys or tab move to the next monitor; a selection may span two monitors
that sit side by side.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("the overlay needs a terminal; use 'gridsnap resolve' in scripts")
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			log.Initialize()
			defer log.Close()
			log.InitDebug()
			defer log.CloseDebug()
			defer log.GetProfiler().LogStats()
			ui.ConfigureColor()

			cfg := config.LoadConfig()
			layoutPath, err := layoutFile(cfg)
			if err != nil {
				return err
			}
			backend, err := platform.Open(layoutPath)
			if err != nil {
				return err
			}
			log.InfoLog.Printf("using %s backend", platform.Name(backend))

			opts := app.Options{
				Backend: backend,
				Config:  cfg,
				State:   config.LoadState(),
				Apply:   applyFlag,
				Copy:    copyFlag,
				Once:    onceFlag,
			}
			if configPath, err := config.ConfigPath(); err == nil {
				w, err := config.NewWatcher(configPath, layoutPath)
				if err != nil {
					log.WarningLog.Printf("config reload disabled: %v", err)
				} else if err := w.Start(); err != nil {
					log.WarningLog.Printf("config reload disabled: %v", err)
				} else {
					defer w.Stop()
					opts.Watcher = w
				}
			}

			return app.Run(ctx, opts)
		},
	}

	resolveCmd = &cobra.Command{
		Use:   "resolve SEQUENCE",
		Short: "Run one selection from a key sequence and print the rectangle",
		Example: `  gridsnap resolve qs
  gridsnap resolve 'e>q' --layout desk.yaml
  gridsnap resolve 'q{down}z' --start 'hw:\\.\DISPLAY2'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()
			layoutPath, err := layoutFile(cfg)
			if err != nil {
				return err
			}
			backend, err := platform.Open(layoutPath)
			if err != nil {
				return err
			}
			snap, err := app.BuildSnapshot(backend, cfg)
			if err != nil {
				return err
			}

			p, err := app.Resolve(cmd.Context(), snap, monitor.ID(startFlag), args[0])
			if err != nil {
				return err
			}
			if copyFlag {
				if err := clipboard.WriteAll(p.Rect.String()); err != nil {
					log.WarningLog.Printf("failed to copy placement: %v", err)
				}
			}
			out, _ := json.Marshal(p)
			fmt.Println(string(out))
			return nil
		},
	}

	monitorsCmd = &cobra.Command{
		Use:   "monitors",
		Short: "List monitors with their grids and neighbors",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()
			layoutPath, err := layoutFile(cfg)
			if err != nil {
				return err
			}
			backend, err := platform.Open(layoutPath)
			if err != nil {
				return err
			}
			snap, err := app.BuildSnapshot(backend, cfg)
			if err != nil {
				return err
			}
			fmt.Printf("Backend: %s\n\n", platform.Name(backend))
			return app.WriteMonitors(os.Stdout, snap)
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Forget the last placement and monitor",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			if err := config.ResetState(); err != nil {
				return fmt.Errorf("failed to reset state: %w", err)
			}
			fmt.Println("State has been reset successfully")
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()

			configPath, err := config.ConfigPath()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", configPath, configJson)
			fmt.Printf("Log: %s\n", log.FileName())
			if layoutPath, err := cfg.ResolveLayoutFile(); err == nil && layoutPath != "" {
				fmt.Printf("Layout: %s\n", layoutPath)
			}
			state := config.LoadState()
			fmt.Printf("Placements: %d\n", state.Placements)
			return nil
		},
	}

	shortVersion  bool
	versionOutput string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of gridsnap",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(goversion.FuncWithOutput(shortVersion, version, commit, date, versionOutput))
		},
	}
)

// layoutFile picks the fixture to simulate: the --layout flag, then the
// config's layout_file.
func layoutFile(cfg *config.Config) (string, error) {
	if layoutFlag != "" {
		return layoutFlag, nil
	}
	return cfg.ResolveLayoutFile()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&layoutFlag, "layout", "l", "",
		"YAML monitor layout to simulate instead of the real desktop")
	rootCmd.PersistentFlags().BoolVarP(&copyFlag, "copy", "c", false,
		"Copy the final rectangle to the clipboard")
	rootCmd.Flags().BoolVarP(&applyFlag, "apply", "a", false,
		"Move the focused window; while the overlay's terminal has the focus the window below it is moved")
	rootCmd.Flags().BoolVar(&onceFlag, "once", false, "Quit after the first selection ends")
	resolveCmd.Flags().StringVarP(&startFlag, "start", "s", "",
		"Monitor ID to open the selection on (default: primary)")

	versionCmd.Flags().BoolVarP(&shortVersion, "short", "s", false, "Print just the version number.")
	versionCmd.Flags().StringVarP(&versionOutput, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(monitorsCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
