package unix

import (
	"bytes"
	"context"
	"github.com/ValentinKolb/nKV/rpc/common"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestUnixRoundTrip(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "nkv.sock")

	// a socket file left behind by an earlier server is replaced
	stale, err := (&serverConnector{}).Listen(common.ServerConfig{Transport: common.ServerTransportConfig{Endpoint: socketPath}})
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	stale.(*net.UnixListener).SetUnlinkOnClose(false)
	_ = stale.Close()

	srv := NewUnixServerTransport()
	srv.RegisterHandler(
		func(req []byte) []byte { return bytes.ToUpper(req) },
		func(err error) []byte { return []byte("rejected") },
	)

	config := common.DefaultServerConfig()
	config.Transport.Endpoint = socketPath
	config.TimeoutSecond = 2

	done := make(chan error, 1)
	go func() { done <- srv.Listen(config) }()

	client := NewUnixClientTransport()
	err = client.Connect(common.ClientConfig{
		TimeoutSecond: 2,
		Transport: common.ClientTransportConfig{
			Endpoints:  []string{socketPath},
			RetryCount: 5,
		},
	})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	resp, err := client.Send([]byte("get;foo;;"))
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got, want := string(resp), "GET;FOO;;"; got != want {
		t.Errorf("Send() = %q, want %q", got, want)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if err := <-done; err != nil {
		t.Errorf("Listen() error = %v", err)
	}
	if _, err := os.Stat(socketPath); !os.IsNotExist(err) {
		t.Errorf("socket file still exists after Shutdown(): %v", err)
	}
}

func TestListenRefusesRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte("keep me"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := (&serverConnector{}).Listen(common.ServerConfig{Transport: common.ServerTransportConfig{Endpoint: path}})
	if err == nil {
		t.Fatalf("Listen() error = nil, want error")
	}
	if data, _ := os.ReadFile(path); string(data) != "keep me" {
		t.Errorf("file content = %q, want it unchanged", data)
	}
}
