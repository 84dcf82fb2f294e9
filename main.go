package main

import (
	"fmt"
	"io/ioutil"
	"net"
	"os"
	"path"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func loadConfig(configFile, dataDir string) (*config, error) {
	configString := ""
	if configFile != "" {
		configBytes, err := ioutil.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		configString = string(configBytes)
	}
	cfg, err := getConfig(configString, dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	return cfg, nil
}

func serve(cfg *config, dataDir string) error {
	if err := cfg.setupSSHConfig(dataDir); err != nil {
		return fmt.Errorf("failed to set up SSH config: %w", err)
	}
	k, err := cfg.createKernel()
	if err != nil {
		return err
	}
	if cfg.Logging.MetricsAddress != "" {
		metricsListener, err := serveMetrics(cfg.Logging.MetricsAddress)
		if err != nil {
			return fmt.Errorf("failed to serve metrics: %w", err)
		}
		defer metricsListener.Close()
	}

	listener, err := net.Listen("tcp", cfg.Server.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen for connections: %w", err)
	}
	defer listener.Close()
	logrus.WithField("listen_address", listener.Addr().String()).Infoln("Listening")

	for {
		conn, err := listener.Accept()
		if err != nil {
			logrus.Warnf("Failed to accept connection: %v", err)
			continue
		}
		go handleConnection(conn, cfg, k)
	}
}

func main() {
	var configFile, dataDir string

	rootCmd := &cobra.Command{
		Use:   "ushell",
		Short: "Command shell of a tiny teaching operating system",
		Long: `ushell runs the userland command shell on this terminal.

Commands: hello, ls, readf <file>, addf <file>, writef <file>, exit.
Use "ushell serve" to offer the shell as an SSH console instead.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile, dataDir)
			if err != nil {
				return err
			}
			// Log lines would end up in the middle of the console.
			if err := cfg.setupLogging(ioutil.Discard); err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			k, err := cfg.createKernel()
			if err != nil {
				return err
			}
			return runLocalShell(k, os.Stdin, os.Stdout)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data_dir", path.Join(xdg.DataHome, "ushell"), "data directory")

	rootCmd.AddCommand(&cobra.Command{
		Use:          "serve",
		Short:        "Serve shell sessions over SSH",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile, dataDir)
			if err != nil {
				return err
			}
			if err := cfg.setupLogging(os.Stdout); err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			return serve(cfg, dataDir)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
