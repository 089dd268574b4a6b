// Package config loads the channel daemon's HCL configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ChannelConfig is the top-level configuration for a channelctl daemon:
// which peer to dial/listen for, the dispute-window timing, and every
// open channel this node currently tracks.
type ChannelConfig struct {
	Node     *NodeSettings     `hcl:"node,block"`
	Channels []ChannelSettings `hcl:"channel,block"`
}

// NodeSettings are process-wide settings.
type NodeSettings struct {
	ListenAddress   string `hcl:"listen_address,optional"`
	LogLevel        string `hcl:"log_level,optional"`
	LogFile         string `hcl:"log_file,optional"`
	DisputeTimeoutS int    `hcl:"dispute_timeout_seconds,optional"`
}

// ChannelSettings describes one heads-up channel this node participates in.
type ChannelSettings struct {
	Name      string `hcl:"name,label"`
	PeerAddr  string `hcl:"peer_address"`
	StackA    int    `hcl:"stack_a"`
	StackB    int    `hcl:"stack_b"`
	SmallBlind int   `hcl:"small_blind,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *ChannelConfig {
	return &ChannelConfig{
		Node: &NodeSettings{
			ListenAddress:   "localhost:8181",
			LogLevel:        "info",
			LogFile:         "channelpoker.log",
			DisputeTimeoutS: 30,
		},
	}
}

// Load reads and decodes an HCL configuration file, falling back to
// Default when the file does not exist.
func Load(filename string) (*ChannelConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse HCL file: %s", diags.Error())
	}

	var cfg ChannelConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode HCL: %s", diags.Error())
	}

	applyDefaults(&cfg)
	for i := range cfg.Channels {
		if cfg.Channels[i].SmallBlind == 0 {
			cfg.Channels[i].SmallBlind = 1
		}
	}
	return &cfg, nil
}

func applyDefaults(cfg *ChannelConfig) {
	if cfg.Node == nil {
		cfg.Node = &NodeSettings{}
	}
	if cfg.Node.ListenAddress == "" {
		cfg.Node.ListenAddress = "localhost:8181"
	}
	if cfg.Node.LogLevel == "" {
		cfg.Node.LogLevel = "info"
	}
	if cfg.Node.LogFile == "" {
		cfg.Node.LogFile = "channelpoker.log"
	}
	if cfg.Node.DisputeTimeoutS == 0 {
		cfg.Node.DisputeTimeoutS = 30
	}
}
