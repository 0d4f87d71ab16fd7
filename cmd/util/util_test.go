package util

import (
	"github.com/spf13/viper"
	"strings"
	"testing"
)

func TestWrapString(t *testing.T) {
	in := strings.Repeat("word ", 30)
	for _, line := range strings.Split(WrapString(in), "\n") {
		if len(line) > Wrap {
			t.Errorf("WrapString() line %q is longer than %d", line, Wrap)
		}
	}
	if got := WrapString("short text"); got != "short text" {
		t.Errorf("WrapString() = %q, want %q", got, "short text")
	}
}

func TestGetClientConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("endpoints", "a:1, b:2,,")
	viper.Set("timeout", 3)
	viper.Set("retries", 1)

	c := GetClientConfig()
	if len(c.Transport.Endpoints) != 2 || c.Transport.Endpoints[1] != "b:2" {
		t.Errorf("Endpoints = %v, want [a:1 b:2]", c.Transport.Endpoints)
	}
	if c.TimeoutSecond != 3 || c.Transport.RetryCount != 1 {
		t.Errorf("GetClientConfig() = %+v", c)
	}
}

func TestFactories(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	tests := []struct {
		serializer, transport string
		wantErr               bool
	}{
		{"line", "tcp", false},
		{"json", "unix", false},
		{"gob", "tcp", true},
		{"line", "http", true},
	}
	for _, tt := range tests {
		viper.Set("serializer", tt.serializer)
		viper.Set("transport", tt.transport)

		_, serErr := GetSerializer()
		_, cliErr := GetTransport()
		_, srvErr := GetServerTransport()
		gotErr := serErr != nil || cliErr != nil || srvErr != nil
		if gotErr != tt.wantErr {
			t.Errorf("factories(%s, %s) error = %v/%v/%v, wantErr %v", tt.serializer, tt.transport, serErr, cliErr, srvErr, tt.wantErr)
		}
	}
}
