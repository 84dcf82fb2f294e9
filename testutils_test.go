package main

import (
	"bytes"
	"io/ioutil"
	"net"
	"path"
	"testing"

	"github.com/jaksi/ushell/kernel"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/crypto/ssh"
)

func setupLogBuffer(t *testing.T, cfg *config) *bytes.Buffer {
	buffer := &bytes.Buffer{}
	if err := cfg.setupLogging(buffer); err != nil {
		t.Fatalf("Failed to setup logging: %v", err)
	}
	return buffer
}

func testConfig(t *testing.T) *config {
	dataDir := t.TempDir()
	cfg := getDefaultConfig(dataDir)
	keyFile, err := generateKey(dataDir, ecdsa_key)
	if err != nil {
		t.Fatalf("Failed to generate host key: %v", err)
	}
	cfg.Server.HostKeys = []string{keyFile}
	cfg.Auth.NoAuth = true
	if err := cfg.setupSSHConfig(dataDir); err != nil {
		t.Fatalf("Failed to setup SSH config: %v", err)
	}
	return cfg
}

func testKernel() *kernel.Kernel {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	return kernel.New(afero.NewMemMapFs(), kernel.Options{Logger: logger})
}

func testClient(t *testing.T, cfg *config, k *kernel.Kernel) (ssh.Conn, <-chan ssh.NewChannel, <-chan *ssh.Request, <-chan interface{}) {
	serverAddress := path.Join(t.TempDir(), "server.sock")
	listener, err := net.Listen("unix", serverAddress)
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	serverDone := make(chan interface{})
	go func() {
		defer close(serverDone)
		serverConn, err := listener.Accept()
		listener.Close()
		if err != nil {
			t.Errorf("Failed to accept connection: %v", err)
			return
		}
		handleConnection(serverConn, cfg, k)
	}()

	clientConn, err := net.Dial("unix", serverAddress)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}

	clientSSHConn, newChannels, requests, err := ssh.NewClientConn(clientConn, serverAddress, &ssh.ClientConfig{
		User:            "root",
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	})
	if err != nil {
		clientConn.Close()
		t.Fatalf("Failed to establish SSH connection: %v", err)
	}

	return clientSSHConn, newChannels, requests, serverDone
}
