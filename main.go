package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"go-music-notify/bridge"
	"go-music-notify/config"
	"go-music-notify/mpdplayer"
	"go-music-notify/notify"
	"go-music-notify/output"
	"go-music-notify/query"
)

// queryCommand is the hidden subcommand the fallback query re-executes.
const queryCommand = "query"

// backend bundles the event source and the scripting bridge of one player.
type backend struct {
	subscribe  func() (notify.Subscription, error)
	bridge     bridge.Bridge
	identities []string
}

func newBackend(cfg config.Config) backend {
	if cfg.Backend == config.BackendMPD {
		addr := cfg.MPDAddr()
		return backend{
			subscribe: func() (notify.Subscription, error) {
				src := mpdplayer.Subscribe(cfg.MPD.Network, addr, cfg.MPD.Password)
				src.Debug = cfg.Debug
				return src, nil
			},
			bridge:     mpdplayer.Bridge{Network: cfg.MPD.Network, Password: cfg.MPD.Password},
			identities: []string{addr},
		}
	}

	return backend{
		subscribe: func() (notify.Subscription, error) {
			return notify.Distributed(notify.PlayerInfoChannel)
		},
		bridge:     bridge.OSAScript{},
		identities: bridge.MusicIdentities,
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	return cfg, nil
}

// newRunner re-executes this binary with the query subcommand and the same
// settings.
func newRunner(c *cli.Context, cfg config.Config) (*query.Runner, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}

	var args []string
	if path := c.String("config"); path != "" {
		args = append(args, "--config", path)
	}
	if cfg.Debug {
		args = append(args, "--debug")
	}
	args = append(args, queryCommand)

	return &query.Runner{
		Path:    exe,
		Args:    args,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Timeout: cfg.Timeout(),
	}, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if term.IsTerminal(int(os.Stdout.Fd())) {
		log.Println("💡 stdout is a terminal; run this as a SwiftBar streamable plugin")
	}

	out := output.New(os.Stdout)
	if err := out.Placeholder(); err != nil {
		return err
	}

	runner, err := newRunner(c, cfg)
	if err != nil {
		return err
	}
	if err := runner.Run(ctx); err != nil && cfg.Debug {
		log.Printf("⚠️  Initial query failed: %v", err)
	}

	b := newBackend(cfg)
	sub, err := b.subscribe()
	if err != nil {
		return err
	}

	if cfg.Debug {
		log.Println("🐛 Debug mode: enabled")
		log.Printf("🎵 Listening for %s player changes", cfg.Backend)
	}

	l := notify.New(sub, out, runner)
	l.Debug = cfg.Debug
	return l.Run(ctx)
}

func probe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := newBackend(cfg)
	p := &query.Probe{
		Bridge:     b.bridge,
		Identities: b.identities,
		Out:        output.New(os.Stdout),
		Debug:      cfg.Debug,
	}
	return p.Run(ctx)
}

func main() {
	app := &cli.App{
		Name:  "music-notify",
		Usage: "Streams the current Music / iTunes track to SwiftBar",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to TOML config file",
				Value:   config.DefaultPath(),
				EnvVars: []string{"MUSIC_NOTIFY_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log diagnostics to stderr",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   queryCommand,
				Usage:  "Query the player once and print its state",
				Hidden: true,
				Action: probe,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
