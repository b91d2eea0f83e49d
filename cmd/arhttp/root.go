package main

import (
	"io"

	"github.com/arloliu/arhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configFile  string
	envFiles    []string
	serverURL   string
	pathFormat  string
	searchPaths []string
	debug       bool
}

// NewRootCmd creates the root command for the arhttp CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "arhttp",
		Short: "Resolve asset paths locally or through an HTTP lookup service",
		Long: `arhttp resolves asset paths against the local filesystem first and
falls back to a GET on the configured lookup service.

Settings come from --config, dotenv files, AR_HTTP_* environment variables
and finally the flags below, in increasing priority.`,
		SilenceUsage: true,
	}

	addConfigFlags(cmd.PersistentFlags(), opts)

	cmd.AddCommand(newResolveCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

func addConfigFlags(fs *pflag.FlagSet, opts *rootOptions) {
	fs.StringVar(&opts.configFile, "config", "", "YAML config file")
	fs.StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv file to load (repeatable)")
	fs.StringVar(&opts.serverURL, "server-url", "", "lookup service base URL (default "+arhttp.DefaultServerURL+")")
	fs.StringVar(&opts.pathFormat, "path-format", "", "URL path template with one %s (default "+arhttp.DefaultPathFormat+")")
	fs.StringSliceVar(&opts.searchPaths, "search-path", nil, "directory searched for relative asset paths (repeatable)")
	fs.BoolVar(&opts.debug, "debug", false, "trace every lookup request to stderr")
}

// loadConfig merges the configured sources with the flags that were set.
func (o *rootOptions) loadConfig(flags *pflag.FlagSet) (arhttp.Config, error) {
	var loadOpts []arhttp.LoadOption
	if o.configFile != "" {
		loadOpts = append(loadOpts, arhttp.FromFile(o.configFile))
	}
	if len(o.envFiles) > 0 {
		loadOpts = append(loadOpts, arhttp.WithEnvFiles(false, o.envFiles...))
	}

	cfg, err := arhttp.LoadConfig(loadOpts...)
	if err != nil {
		return arhttp.Config{}, err
	}

	if flags.Changed("server-url") {
		cfg.ServerURL = o.serverURL
	}
	if flags.Changed("path-format") {
		cfg.PathFormat = o.pathFormat
	}
	if flags.Changed("search-path") {
		cfg.SearchPaths = o.searchPaths
	}
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}

	return cfg, cfg.Validate()
}

// newLogger writes human-readable debug output to w.
func newLogger(w io.Writer) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zapcore.DebugLevel)

	return zap.New(core)
}
