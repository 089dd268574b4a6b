package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.hcl"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Node.ListenAddress != "localhost:8181" {
		t.Errorf("ListenAddress = %q, want default", cfg.Node.ListenAddress)
	}
	if cfg.Node.DisputeTimeoutS != 30 {
		t.Errorf("DisputeTimeoutS = %d, want 30", cfg.Node.DisputeTimeoutS)
	}
}

func TestLoadParsesChannelBlocks(t *testing.T) {
	body := `
node {
  listen_address = "0.0.0.0:9000"
  dispute_timeout_seconds = 45
}

channel "alice-vs-bob" {
  peer_address = "10.0.0.2:9000"
  stack_a      = 20000
  stack_b      = 20000
  small_blind  = 50
}
`
	path := filepath.Join(t.TempDir(), "channelpoker.hcl")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Node.ListenAddress != "0.0.0.0:9000" {
		t.Errorf("ListenAddress = %q", cfg.Node.ListenAddress)
	}
	if cfg.Node.DisputeTimeoutS != 45 {
		t.Errorf("DisputeTimeoutS = %d", cfg.Node.DisputeTimeoutS)
	}
	if len(cfg.Channels) != 1 {
		t.Fatalf("Channels = %d, want 1", len(cfg.Channels))
	}
	ch := cfg.Channels[0]
	if ch.Name != "alice-vs-bob" || ch.PeerAddr != "10.0.0.2:9000" {
		t.Errorf("unexpected channel block: %+v", ch)
	}
	if ch.StackA != 20000 || ch.StackB != 20000 || ch.SmallBlind != 50 {
		t.Errorf("unexpected channel stakes: %+v", ch)
	}
}

func TestLoadDefaultsSmallBlindWhenOmitted(t *testing.T) {
	body := `
channel "heads-up" {
  peer_address = "10.0.0.3:9000"
  stack_a      = 5000
  stack_b      = 5000
}
`
	path := filepath.Join(t.TempDir(), "channelpoker.hcl")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Channels[0].SmallBlind != 1 {
		t.Errorf("SmallBlind = %d, want default 1", cfg.Channels[0].SmallBlind)
	}
}
