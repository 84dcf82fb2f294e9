package main

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

type connMetadata struct {
	ssh.ConnMetadata
}

func (metadata connMetadata) getLogEntry() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"remote_address": metadata.RemoteAddr().String(),
		"user":           metadata.User(),
	})
}

type channelMetadata struct {
	connMetadata
	channelID int
}

func (metadata channelMetadata) getLogEntry() *logrus.Entry {
	return metadata.connMetadata.getLogEntry().WithField("channel_id", metadata.channelID)
}
