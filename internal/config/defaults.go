package config

const (
	defaultDataDir        = "~/.local/share/fuzzyhash"
	defaultLogDir         = "~/.local/share/fuzzyhash/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultReadBufferSize = 256 * 1024
	defaultMinSize        = 0
	defaultDeclareSize    = true
	defaultFollowSymlinks = false
	defaultScanHidden     = false

	minReadBufferSize = 4 * 1024
	maxReadBufferSize = 64 * 1024 * 1024
	maxWorkers        = 256
)

var defaultExclude = []string{".git", "node_modules"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Hashing: Hashing{
			ReadBufferSize: defaultReadBufferSize,
			Workers:        0,
			DeclareSize:    defaultDeclareSize,
		},
		Scan: Scan{
			FollowSymlinks: defaultFollowSymlinks,
			Hidden:         defaultScanHidden,
			MinSize:        defaultMinSize,
			Exclude:        append([]string(nil), defaultExclude...),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
