package main

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path"

	"github.com/jaksi/ushell/kernel"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/crypto/ssh"
	"gopkg.in/yaml.v2"
)

type serverConfig struct {
	ListenAddress string   `yaml:"listen_address"`
	HostKeys      []string `yaml:"host_keys"`
}

type loggingConfig struct {
	File           string `yaml:"file"`
	JSON           bool   `yaml:"json"`
	Timestamps     bool   `yaml:"timestamps"`
	Debug          bool   `yaml:"debug"`
	MetricsAddress string `yaml:"metrics_address"`
}

type commonAuthConfig struct {
	Enabled  bool `yaml:"enabled"`
	Accepted bool `yaml:"accepted"`
}

type authConfig struct {
	NoAuth        bool             `yaml:"no_auth"`
	PasswordAuth  commonAuthConfig `yaml:"password_auth"`
	PublicKeyAuth commonAuthConfig `yaml:"public_key_auth"`
}

type sshProtoConfig struct {
	Version string `yaml:"version"`
	Banner  string `yaml:"banner"`
}

const (
	memoryBackend = "memory"
	diskBackend   = "disk"
)

type fsConfig struct {
	Backend     string `yaml:"backend"`
	Dir         string `yaml:"dir"`
	MaxFiles    int    `yaml:"max_files"`
	MaxFileSize int    `yaml:"max_file_size"`
}

type config struct {
	Server   serverConfig   `yaml:"server"`
	Logging  loggingConfig  `yaml:"logging"`
	Auth     authConfig     `yaml:"auth"`
	SSHProto sshProtoConfig `yaml:"ssh_proto"`
	FS       fsConfig       `yaml:"fs"`

	parsedHostKeys []ssh.Signer
	sshConfig      *ssh.ServerConfig
	logFileHandle  io.WriteCloser
}

func getDefaultConfig(dataDir string) *config {
	cfg := &config{}
	cfg.Server.ListenAddress = "127.0.0.1:2022"
	cfg.Logging.Timestamps = true
	cfg.Auth.PasswordAuth.Enabled = true
	cfg.Auth.PasswordAuth.Accepted = true
	cfg.Auth.PublicKeyAuth.Enabled = true
	cfg.SSHProto.Version = "SSH-2.0-ushell"
	cfg.FS.Backend = memoryBackend
	cfg.FS.Dir = path.Join(dataDir, "files")
	cfg.FS.MaxFiles = kernel.DefaultMaxFiles
	cfg.FS.MaxFileSize = kernel.DefaultMaxFileSize
	return cfg
}

func getConfig(configString string, dataDir string) (*config, error) {
	cfg := getDefaultConfig(dataDir)
	if err := yaml.UnmarshalStrict([]byte(configString), cfg); err != nil {
		return nil, err
	}
	switch cfg.FS.Backend {
	case memoryBackend, diskBackend:
	default:
		return nil, fmt.Errorf("unsupported fs backend %q", cfg.FS.Backend)
	}
	if cfg.FS.MaxFiles <= 0 || cfg.FS.MaxFileSize <= 0 {
		return nil, errors.New("fs limits must be positive")
	}
	return cfg, nil
}

// setupLogging points logrus at the configured log file, or at defaultOutput
// when there is none. Any previously opened log file is closed.
func (cfg *config) setupLogging(defaultOutput io.Writer) error {
	if cfg.logFileHandle != nil {
		cfg.logFileHandle.Close()
		cfg.logFileHandle = nil
	}
	if cfg.Logging.File != "" {
		logFile, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		logrus.SetOutput(logFile)
		cfg.logFileHandle = logFile
	} else {
		logrus.SetOutput(defaultOutput)
	}
	if cfg.Logging.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{DisableTimestamp: !cfg.Logging.Timestamps})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: !cfg.Logging.Timestamps, FullTimestamp: true})
	}
	if cfg.Logging.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	return nil
}

func (cfg *config) setupSSHConfig(dataDir string) error {
	if len(cfg.Server.HostKeys) == 0 {
		logrus.WithField("data_dir", dataDir).Infoln("No host keys configured, using keys in data directory")
		for _, keyType := range []hostKeyType{rsa_key, ecdsa_key, ed25519_key} {
			keyFile, err := generateKey(dataDir, keyType)
			if err != nil {
				return err
			}
			cfg.Server.HostKeys = append(cfg.Server.HostKeys, keyFile)
		}
	}
	sshConfig := &ssh.ServerConfig{
		NoClientAuth:      cfg.Auth.NoAuth,
		PasswordCallback:  cfg.getPasswordCallback(),
		PublicKeyCallback: cfg.getPublicKeyCallback(),
		AuthLogCallback:   authLogCallback,
		ServerVersion:     cfg.SSHProto.Version,
		BannerCallback:    cfg.getBannerCallback(),
	}
	cfg.parsedHostKeys = nil
	for _, keyFile := range cfg.Server.HostKeys {
		keyBytes, err := ioutil.ReadFile(keyFile)
		if err != nil {
			return err
		}
		signer, err := ssh.ParsePrivateKey(keyBytes)
		if err != nil {
			return fmt.Errorf("failed to parse host key %v: %w", keyFile, err)
		}
		sshConfig.AddHostKey(signer)
		cfg.parsedHostKeys = append(cfg.parsedHostKeys, signer)
	}
	cfg.sshConfig = sshConfig
	return nil
}

func (cfg *config) createKernel() (*kernel.Kernel, error) {
	var fs afero.Fs
	switch cfg.FS.Backend {
	case memoryBackend:
		fs = afero.NewMemMapFs()
	case diskBackend:
		if err := os.MkdirAll(cfg.FS.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create fs directory: %w", err)
		}
		fs = afero.NewBasePathFs(afero.NewOsFs(), cfg.FS.Dir)
	default:
		return nil, fmt.Errorf("unsupported fs backend %q", cfg.FS.Backend)
	}
	return kernel.New(fs, kernel.Options{
		MaxFiles:    cfg.FS.MaxFiles,
		MaxFileSize: cfg.FS.MaxFileSize,
	}), nil
}
