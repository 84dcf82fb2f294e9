package main

import (
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/jaksi/ushell/kernel"
	"github.com/jaksi/ushell/shell"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

type ptyRequest struct {
	Term                                   string
	Width, Height, PixelWidth, PixelHeight uint32
	Modes                                  string
}

type exitStatus struct {
	ExitStatus uint32
}

type sessionContext struct {
	ssh.Channel
	metadata channelMetadata
	kernel   *kernel.Kernel
	pty      bool
	active   bool
	done     chan error
}

func (session *sessionContext) startShell() {
	session.active = true
	console := shell.NewStreamConsole(session.Channel, session.Channel, session.pty)
	process := session.kernel.Spawn(console)
	logger := session.metadata.getLogEntry().WithFields(logrus.Fields{
		"session_id": uuid.New().String(),
		"pid":        process.PID(),
	})
	logger.Infoln("Shell started")
	activeSessions.Inc()
	go func() {
		defer activeSessions.Dec()
		err := shell.New(console, process, logger).Run()
		process.Exit()
		logger.WithField("error", err).Infoln("Shell ended")
		session.done <- err
	}()
}

// finish reports the shell's result to the client and closes the channel.
func (session *sessionContext) finish(shellErr error) error {
	var status uint32
	if shellErr != nil && !errors.Is(shellErr, io.EOF) {
		status = 1
	}
	if _, err := session.SendRequest("exit-status", false, ssh.Marshal(exitStatus{status})); err != nil {
		return err
	}
	if err := session.CloseWrite(); err != nil {
		return err
	}
	return session.Close()
}

func (session *sessionContext) handleRequest(request *ssh.Request) bool {
	switch request.Type {
	case "pty-req":
		if session.pty || session.active {
			return false
		}
		payload := &ptyRequest{}
		if err := ssh.Unmarshal(request.Payload, payload); err != nil {
			session.metadata.getLogEntry().Warnf("Failed to parse pty-req payload: %v", err)
			return false
		}
		session.metadata.getLogEntry().WithFields(logrus.Fields{
			"terminal": payload.Term,
			"width":    payload.Width,
			"height":   payload.Height,
		}).Infoln("PTY requested")
		session.pty = true
		return true
	case "env", "window-change":
		return true
	case "shell":
		if session.active || len(request.Payload) != 0 {
			return false
		}
		session.startShell()
		return true
	default:
		return false
	}
}

func handleSessionChannel(newChannel ssh.NewChannel, metadata channelMetadata, k *kernel.Kernel) error {
	if len(newChannel.ExtraData()) != 0 {
		if err := newChannel.Reject(ssh.Prohibited, "invalid channel data"); err != nil {
			return err
		}
		return errors.New("invalid channel data")
	}
	channel, requests, err := newChannel.Accept()
	if err != nil {
		return err
	}
	defer channel.Close()
	metadata.getLogEntry().Infoln("Session channel opened")
	defer metadata.getLogEntry().Infoln("Session channel closed")

	session := &sessionContext{
		Channel:  channel,
		metadata: metadata,
		kernel:   k,
		done:     make(chan error, 1),
	}
	done := session.done
	for requests != nil {
		select {
		case request, ok := <-requests:
			if !ok {
				requests = nil
				continue
			}
			accepted := session.handleRequest(request)
			metadata.getLogEntry().WithFields(logrus.Fields{
				"request_type": request.Type,
				"accepted":     accepted,
			}).Debugln("Session request handled")
			if request.WantReply {
				if err := request.Reply(accepted, nil); err != nil {
					return err
				}
			}
		case err := <-done:
			done = nil
			if err := session.finish(err); err != nil {
				return err
			}
		}
	}
	return nil
}
