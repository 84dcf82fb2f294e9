package main

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"io/ioutil"
	"os"
	"path"

	"github.com/sirupsen/logrus"
)

type hostKeyType int

const (
	rsa_key hostKeyType = iota
	ecdsa_key
	ed25519_key
)

func (keyType hostKeyType) fileName() string {
	switch keyType {
	case rsa_key:
		return "host_rsa_key"
	case ecdsa_key:
		return "host_ecdsa_key"
	case ed25519_key:
		return "host_ed25519_key"
	default:
		return "host_unknown_key"
	}
}

// generateKey makes sure a key of the given type exists in dataDir, generating
// it if needed, and returns its file name.
func generateKey(dataDir string, keyType hostKeyType) (string, error) {
	keyFile := path.Join(dataDir, keyType.fileName())
	if _, err := os.Stat(keyFile); err == nil {
		return keyFile, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}
	logrus.WithField("key_file", keyFile).Infoln("Host key not found, generating it")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	var key interface{}
	var err error
	switch keyType {
	case rsa_key:
		key, err = rsa.GenerateKey(rand.Reader, 3072)
	case ecdsa_key:
		key, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	case ed25519_key:
		_, key, err = ed25519.GenerateKey(rand.Reader)
	default:
		err = errors.New("unsupported key type")
	}
	if err != nil {
		return "", err
	}
	keyBytes, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return "", err
	}
	if err := ioutil.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes}), 0600); err != nil {
		return "", err
	}
	return keyFile, nil
}
