package main

import (
	"regexp"
	"testing"
)

func TestPlainWithTimestamps(t *testing.T) {
	cfg := &config{
		Logging: loggingConfig{
			JSON:       false,
			Timestamps: true,
		},
	}
	logBuffer := setupLogBuffer(t, cfg)
	connMetadata{mockConnMetadata{}}.getLogEntry().Infoln("lorem")
	logs := logBuffer.String()
	expectedLogs := regexp.MustCompile(`^time="[^"]+" level=info msg=lorem remote_address="127\.0\.0\.1:1234" user=root
$`)
	if !expectedLogs.MatchString(logs) {
		t.Errorf("logs=%v, want match for %v", logs, expectedLogs)
	}
}

func TestJSONWithTimestamps(t *testing.T) {
	cfg := &config{
		Logging: loggingConfig{
			JSON:       true,
			Timestamps: true,
		},
	}
	logBuffer := setupLogBuffer(t, cfg)
	connMetadata{mockConnMetadata{}}.getLogEntry().Infoln("ipsum")
	logs := logBuffer.String()
	expectedLogs := regexp.MustCompile(`^{"level":"info","msg":"ipsum","remote_address":"127\.0\.0\.1:1234","time":"[^"]+","user":"root"}
$`)
	if !expectedLogs.MatchString(logs) {
		t.Errorf("logs=%v, want match for %v", logs, expectedLogs)
	}
}

func TestPlainWithoutTimestamps(t *testing.T) {
	cfg := &config{
		Logging: loggingConfig{
			JSON:       false,
			Timestamps: false,
		},
	}
	logBuffer := setupLogBuffer(t, cfg)
	channelMetadata{connMetadata{mockConnMetadata{}}, 3}.getLogEntry().Infoln("dolor")
	logs := logBuffer.String()
	expectedLogs := `level=info msg=dolor channel_id=3 remote_address="127.0.0.1:1234" user=root
`
	if logs != expectedLogs {
		t.Errorf("logs=%v, want %v", logs, expectedLogs)
	}
}

func TestJSONWithoutTimestamps(t *testing.T) {
	cfg := &config{
		Logging: loggingConfig{
			JSON:       true,
			Timestamps: false,
		},
	}
	logBuffer := setupLogBuffer(t, cfg)
	channelMetadata{connMetadata{mockConnMetadata{}}, 3}.getLogEntry().Infoln("sit")
	logs := logBuffer.String()
	expectedLogs := `{"channel_id":3,"level":"info","msg":"sit","remote_address":"127.0.0.1:1234","user":"root"}
`
	if logs != expectedLogs {
		t.Errorf("logs=%v, want %v", logs, expectedLogs)
	}
}

func TestDebugLevel(t *testing.T) {
	for _, debug := range []bool{false, true} {
		cfg := &config{}
		cfg.Logging.Debug = debug
		logBuffer := setupLogBuffer(t, cfg)
		connMetadata{mockConnMetadata{}}.getLogEntry().Debugln("amet")
		if logged := logBuffer.Len() != 0; logged != debug {
			t.Errorf("debug=%v: logged=%v, want %v", debug, logged, debug)
		}
	}
}
