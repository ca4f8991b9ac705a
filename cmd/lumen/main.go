package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lumen-web/lumen/auth"
	"github.com/lumen-web/lumen/cache"
	"github.com/lumen-web/lumen/config"
	"github.com/lumen-web/lumen/router"
	"github.com/lumen-web/lumen/server"
)

func main() {
	cfg := config.Default()
	var (
		user     string
		password string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:           "lumen",
		Short:         "A minimal HTTP/1.1 file server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.TraceLevel
			}

			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().
				Timestamp().
				Logger()

			authenticator := auth.NewBasic(auth.NewCredentials(user, password))
			store := cache.New(cfg.FS.CacheDir)
			rt := router.New(cfg, authenticator, log)
			srv := server.New(cfg, rt, store, log)

			log.Info().Str("addr", cfg.NET.Addr).Str("root", cfg.FS.Root).Msg("listening")
			return srv.ListenAndServe()
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.NET.Addr, "addr", cfg.NET.Addr, "address to listen on")
	flags.StringVar(&cfg.FS.Root, "directory", cfg.FS.Root, "directory served under /files/")
	flags.StringVar(&cfg.FS.CacheDir, "cache-dir", cfg.FS.CacheDir, "directory for cached responses")
	flags.IntVar(&cfg.NET.Workers, "workers", cfg.NET.Workers, "connection worker pool size")
	flags.StringVar(&user, "user", "admin", "basic auth user")
	flags.StringVar(&password, "password", "password", "basic auth password")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable trace logging")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
