// Package config declares the top-level CLI structure parsed by Kong.
package config

import (
	"github.com/anpep/chromactl/internal/cmd"
)

// CLI is the root command tree. Values come from flags, environment
// variables and layered JSON/YAML/TOML config files, in that priority.
type CLI struct {
	Set    cmd.Set           `cmd:"" help:"Set a LED zone to a static color and persist it"`
	Config cmd.ConfigCommand `cmd:"" help:"Configuration file helpers"`

	Log        LogConfig `embed:"" prefix:"log."`
	ConfigPath string    `name:"config" help:"Path to a config file" env:"CHROMACTL_CONFIG"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level   string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"CHROMACTL_LOG_LEVEL"`
	File    string `help:"Write logs to this file instead of stdout/stderr" env:"CHROMACTL_LOG_FILE"`
	RawFile string `help:"Write raw report hex dumps to this file" env:"CHROMACTL_LOG_RAW_FILE"`
}
