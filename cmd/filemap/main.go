package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/filemap/internal/profile"
	"github.com/hrygo/filemap/server"
	"github.com/hrygo/filemap/store"
	"github.com/hrygo/filemap/store/db"
)

const version = "0.2.0"

var (
	rootCmd = &cobra.Command{
		Use:   "filemap",
		Short: "A personal file manager with tags, categories and a knowledge graph",
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP read API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			s, p, err := openStore(ctx)
			if err != nil {
				return err
			}

			srv := server.NewServer(p, s)

			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			go func() {
				sig := <-c
				slog.Info("received signal, shutting down", slog.String("signal", sig.String()))
				cancel()
			}()

			return srv.Start(ctx)
		},
	}

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create the workspace directories and config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := loadProfile()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(p.ManagedDir, 0o770); err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := newStore(ctx, p)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := writeDefaultConfig(); err != nil {
				return err
			}
			fmt.Printf("workspace initialized\n  data:    %s\n  managed: %s\n  driver:  %s\n", p.Data, p.ManagedDir, p.Driver)
			return nil
		},
	}
)

func init() {
	viper.SetEnvPrefix("filemap")
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().String("mode", "prod", `mode of the workspace, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the HTTP server")
	rootCmd.PersistentFlags().Int("port", 8230, "port of the HTTP server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.AddConfigPath(profile.DefaultWorkspace())
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	// Missing config file is fine; flags and env carry the defaults.
	_ = viper.ReadInConfig()

	rootCmd.AddCommand(initCmd, serveCmd, fileCmd, tagCmd, categoryCmd, graphCmd, searchCmd, statsCmd)
}

// loadProfile builds and validates the profile from viper's merged config.
func loadProfile() (*profile.Profile, error) {
	p := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Addr:    viper.GetString("addr"),
		Port:    viper.GetInt("port"),
		Data:    viper.GetString("data"),
		Driver:  viper.GetString("driver"),
		DSN:     viper.GetString("dsn"),
		Version: version,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func newStore(ctx context.Context, p *profile.Profile) (*store.Store, error) {
	driver, err := db.NewDBDriver(p)
	if err != nil {
		return nil, err
	}
	s := store.New(driver, p)
	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// openStore is the common entry for data commands: profile plus migrated store.
func openStore(ctx context.Context) (*store.Store, *profile.Profile, error) {
	p, err := loadProfile()
	if err != nil {
		return nil, nil, err
	}
	s, err := newStore(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	return s, p, nil
}

// writeDefaultConfig creates ~/.filemap/config.yaml unless it exists.
func writeDefaultConfig() error {
	workspace := profile.DefaultWorkspace()
	if err := os.MkdirAll(workspace, 0o770); err != nil {
		return err
	}
	configPath := filepath.Join(workspace, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	content := fmt.Sprintf("mode: %s\nport: %d\ndriver: %s\n",
		viper.GetString("mode"), viper.GetInt("port"), viper.GetString("driver"))
	return os.WriteFile(configPath, []byte(content), 0o640)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
