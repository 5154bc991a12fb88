package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/saleslv/premium-api/internal/cliconfig"
	"github.com/saleslv/premium-api/internal/render"
	"github.com/saleslv/premium-api/pkg/apierr"
	"github.com/saleslv/premium-api/pkg/client"
	"github.com/saleslv/premium-api/pkg/log"
)

const helpDescription = `
Query a SalesLV Premium campaign from the command line.

Configuration is read from $HOME/.premium/config.toml, then .env and
PREMIUM_* environment variables, then flags. Later sources win.
`

var exampleUsage = strings.TrimSpace(`
  premium info --api-key <key> --campaign <code>
  premium messages list --from Date=2024-01-01 --to Date=2024-01-31
  premium messages create --field Name=Jane --attach receipt.jpg:image/jpeg:Receipt
  premium watch --interval 30s
`)

// errHalted reports a call that recorded a non-zero error state. The error
// has already been printed.
var errHalted = errors.New("request returned an error")

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return client.Version
}

// app carries state shared by all commands.
type app struct {
	// flags holds defaults overlaid with the flag values the user set.
	flags   cliconfig.Config
	cfgPath string
	envPath string

	logger log.Logger
}

func main() {
	a := &app{flags: cliconfig.DefaultConfig(), logger: log.NewNoopLogger()}
	root := a.rootCommand()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errHalted) {
			fmt.Fprintln(os.Stderr, "premium:", err)
		}
		cancel()
		os.Exit(1)
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "premium",
		Short:         "Query a SalesLV Premium campaign",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cfg := &a.flags
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.premium/config.toml)")
	pf.StringVar(&a.envPath, "env-file", ".env", "path to a .env file")
	pf.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "campaign API key")
	pf.StringVar(&cfg.CampaignCode, "campaign", cfg.CampaignCode, "campaign code")
	pf.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "service base URL")
	pf.StringVar(&cfg.APIVersion, "api-version", cfg.APIVersion, "API version segment")
	pf.BoolVar(&cfg.JSONSuffix, "json-suffix", cfg.JSONSuffix, "append :json to the API segment")
	pf.BoolVar(&cfg.Insecure, "insecure", cfg.Insecure, "skip TLS certificate verification")
	pf.BoolVar(&cfg.AllowStream, "allow-stream", cfg.AllowStream, "allow the stream transport")
	pf.StringSliceVar(&cfg.DisabledTiers, "disable-tier", cfg.DisabledTiers, "transport tiers to skip (native, socket, stream)")
	pf.DurationVar(&cfg.ConnectTimeout, "connect-timeout", cfg.ConnectTimeout, "connection timeout")
	pf.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall request timeout")
	pf.IntVar(&cfg.MaxRedirects, "max-redirects", cfg.MaxRedirects, "redirects to follow (0 disables)")
	pf.BoolVar(&cfg.Debug, "debug", cfg.Debug, "print the request and raw response")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		a.callCommand("info", "Show campaign information", (*client.Client).InfoGet),
		a.callCommand("stats", "Show campaign statistics", (*client.Client).StatisticsGeneral),
		a.messagesCommand(),
		a.watchCommand(),
	)
	return root
}

// loadConfig merges file, .env and environment values under the flags the
// user set. It is called again on every config reload.
func (a *app) loadConfig(cmd *cobra.Command) (cliconfig.Config, error) {
	cfg := a.flags
	cfg.DisabledTiers = append([]string(nil), a.flags.DisabledTiers...)

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile := a.configPath(); cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
			return cfg, err
		}
	}

	if err := cliconfig.LoadDotEnv(a.envPath); err != nil {
		return cfg, fmt.Errorf("load %s: %w", a.envPath, err)
	}
	if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (a *app) configPath() string {
	if a.cfgPath != "" {
		return a.cfgPath
	}
	return cliconfig.DefaultConfigPath()
}

// prepare loads the configuration and installs the logger.
func (a *app) prepare(cmd *cobra.Command) (cliconfig.Config, error) {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return cfg, err
	}

	logger, err := log.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return cfg, err
	}
	a.logger = logger
	logger.Debug("configuration", log.Any("config", cfg.Masked()))
	return cfg, nil
}

// setup is prepare followed by building a client.
func (a *app) setup(cmd *cobra.Command) (*client.Client, cliconfig.Config, error) {
	cfg, err := a.prepare(cmd)
	if err != nil {
		return nil, cfg, err
	}
	c, err := a.newClient(cfg)
	return c, cfg, err
}

func (a *app) newClient(cfg cliconfig.Config) (*client.Client, error) {
	cc, err := cfg.ClientConfig()
	if err != nil {
		return nil, err
	}
	c, err := client.New(cc,
		client.WithLogger(a.logger),
		client.WithRemoteAddr(localAddr),
	)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

// localAddr is the IP sent with new messages when none is given. A CLI has no
// inbound request, so the user may supply one through PREMIUM_IP.
func localAddr() string {
	return os.Getenv(cliconfig.EnvPrefix + "IP")
}

// report prints the outcome of one call. Any non-zero error state stops
// output after the error line.
func (a *app) report(cmd *cobra.Command, c *client.Client, cfg cliconfig.Config, payload client.Payload, err error) error {
	out := render.New(cmd.OutOrStdout())
	if cfg.Debug {
		out.Debug(c.LastDebugRecord())
	}
	if code := c.LastErrorCode(); code != apierr.None {
		out.Error(code, c.LastError())
		return errHalted
	}
	if err != nil {
		return err
	}
	return out.Payload(payload)
}

type callFunc func(*client.Client, context.Context) (client.Payload, error)

func (a *app) callCommand(use, short string, call callFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := a.setup(cmd)
			if err != nil {
				return err
			}
			payload, err := call(c, cmd.Context())
			return a.report(cmd, c, cfg, payload, err)
		},
	}
}
