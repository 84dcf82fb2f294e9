package main

import (
	"net"
	"sync"

	"github.com/jaksi/ushell/kernel"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

func handleConnection(conn net.Conn, cfg *config, k *kernel.Kernel) {
	defer conn.Close()
	connLog := logrus.WithField("remote_address", conn.RemoteAddr().String())
	serverConn, newChannels, requests, err := ssh.NewServerConn(conn, cfg.sshConfig)
	if err != nil {
		connLog.Warnf("Failed to establish SSH connection: %v", err)
		return
	}
	defer serverConn.Close()
	metadata := connMetadata{serverConn}
	metadata.getLogEntry().Infoln("SSH connection established")
	defer metadata.getLogEntry().Infoln("SSH connection closed")

	go func() {
		for request := range requests {
			metadata.getLogEntry().WithField("request_type", request.Type).Infoln("Global request rejected")
			if request.WantReply {
				if err := request.Reply(false, nil); err != nil {
					metadata.getLogEntry().Warnf("Failed to reply to global request: %v", err)
				}
			}
		}
	}()

	var sessions sync.WaitGroup
	channelID := 0
	for newChannel := range newChannels {
		channelType := newChannel.ChannelType()
		if channelType != "session" {
			metadata.getLogEntry().WithField("channel_type", channelType).Infoln("Unsupported channel type rejected")
			if err := newChannel.Reject(ssh.UnknownChannelType, "unsupported channel type"); err != nil {
				metadata.getLogEntry().Warnf("Failed to reject channel: %v", err)
				break
			}
			continue
		}
		sessions.Add(1)
		go func(newChannel ssh.NewChannel, metadata channelMetadata) {
			defer sessions.Done()
			if err := handleSessionChannel(newChannel, metadata, k); err != nil {
				metadata.getLogEntry().Warnf("Failed to handle session channel: %v", err)
			}
		}(newChannel, channelMetadata{metadata, channelID})
		channelID++
	}
	sessions.Wait()
}
