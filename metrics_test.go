package main

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"
)

func TestServeMetrics(t *testing.T) {
	setupLogBuffer(t, &config{})
	listener, err := serveMetrics("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to serve metrics: %v", err)
	}
	defer listener.Close()

	response, err := http.Get(fmt.Sprintf("http://%v/metrics", listener.Addr()))
	if err != nil {
		t.Fatalf("Failed to get metrics: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Errorf("StatusCode=%v, want %v", response.StatusCode, http.StatusOK)
	}
	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("Failed to read metrics: %v", err)
	}
	for _, expected := range []string{"ushell_active_sessions", "ushell_line_overflows_total"} {
		if !strings.Contains(string(body), expected) {
			t.Errorf("metrics=%v, want them to contain %v", string(body), expected)
		}
	}
}
