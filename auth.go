package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

var errAuthRejected = errors.New("authentication rejected")

func authLogCallback(conn ssh.ConnMetadata, method string, err error) {
	if method == "none" && err != nil {
		// Clients always try "none" first; only log it when it matters.
		return
	}
	connMetadata{conn}.getLogEntry().WithFields(logrus.Fields{
		"method":  method,
		"success": err == nil,
	}).Infoln("Client attempted to authenticate")
}

func (cfg *config) getPasswordCallback() func(conn ssh.ConnMetadata, password []byte) (*ssh.Permissions, error) {
	if !cfg.Auth.PasswordAuth.Enabled {
		return nil
	}
	return func(conn ssh.ConnMetadata, password []byte) (*ssh.Permissions, error) {
		connMetadata{conn}.getLogEntry().WithField("success", cfg.Auth.PasswordAuth.Accepted).Infoln("Password authentication attempted")
		if !cfg.Auth.PasswordAuth.Accepted {
			return nil, errAuthRejected
		}
		return nil, nil
	}
}

func (cfg *config) getPublicKeyCallback() func(conn ssh.ConnMetadata, key ssh.PublicKey) (*ssh.Permissions, error) {
	if !cfg.Auth.PublicKeyAuth.Enabled {
		return nil
	}
	return func(conn ssh.ConnMetadata, key ssh.PublicKey) (*ssh.Permissions, error) {
		connMetadata{conn}.getLogEntry().WithFields(logrus.Fields{
			"public_key_fingerprint": ssh.FingerprintSHA256(key),
			"success":                cfg.Auth.PublicKeyAuth.Accepted,
		}).Infoln("Public key authentication attempted")
		if !cfg.Auth.PublicKeyAuth.Accepted {
			return nil, errAuthRejected
		}
		return nil, nil
	}
}

func (cfg *config) getBannerCallback() func(conn ssh.ConnMetadata) string {
	if cfg.SSHProto.Banner == "" {
		return nil
	}
	banner := strings.ReplaceAll(strings.ReplaceAll(cfg.SSHProto.Banner, "\r\n", "\n"), "\n", "\r\n")
	if !strings.HasSuffix(banner, "\r\n") {
		banner = fmt.Sprintf("%v\r\n", banner)
	}
	return func(conn ssh.ConnMetadata) string { return banner }
}
