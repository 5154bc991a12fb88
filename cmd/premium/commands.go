package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/saleslv/premium-api/internal/render"
	"github.com/saleslv/premium-api/internal/watch"
	"github.com/saleslv/premium-api/pkg/apierr"
	"github.com/saleslv/premium-api/pkg/client"
	"github.com/saleslv/premium-api/pkg/log"
)

func (a *app) messagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Read and submit campaign messages",
	}
	cmd.AddCommand(a.messagesGetCommand(), a.messagesListCommand(), a.messagesCreateCommand())
	return cmd
}

func (a *app) messagesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid message id %q: %w", args[0], err)
			}
			c, cfg, err := a.setup(cmd)
			if err != nil {
				return err
			}
			payload, err := c.MessagesGet(cmd.Context(), id)
			return a.report(cmd, c, cfg, payload, err)
		},
	}
}

func (a *app) messagesListCommand() *cobra.Command {
	var (
		from, to []string
		offset   int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages matching a filter",
		Long: "List messages whose fields match --from. A field given in both --from\n" +
			"and --to selects the range between the two values.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lower, err := parseFilter(from)
			if err != nil {
				return err
			}
			upper, err := parseFilter(to)
			if err != nil {
				return err
			}
			c, cfg, err := a.setup(cmd)
			if err != nil {
				return err
			}
			payload, err := c.MessagesList(cmd.Context(), lower, upper, offset)
			return a.report(cmd, c, cfg, payload, err)
		},
	}
	cmd.Flags().StringArrayVar(&from, "from", nil, "filter field as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&to, "to", nil, "upper bound field as key=value (repeatable)")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of messages to skip")
	return cmd
}

func (a *app) messagesCreateCommand() *cobra.Command {
	var fields, attach []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a new message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parsePairs(fields)
			if err != nil {
				return err
			}
			files, err := parseAttachments(attach)
			if err != nil {
				return err
			}
			c, cfg, err := a.setup(cmd)
			if err != nil {
				return err
			}
			payload, err := c.MessagesCreate(cmd.Context(), values, files)
			return a.report(cmd, c, cfg, payload, err)
		},
	}
	cmd.Flags().StringArrayVar(&fields, "field", nil, "message field as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&attach, "attach", nil, "file to upload as path:type:name (repeatable)")
	return cmd
}

func (a *app) watchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll campaign statistics until interrupted",
		Long: "Poll campaign statistics on an interval. Edits to the config file are\n" +
			"picked up without a restart.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.prepare(cmd); err != nil {
				return err
			}
			out := render.New(cmd.OutOrStdout())

			var current *client.Client
			var debugOutput bool
			load := func() (watch.Target, error) {
				next, err := a.loadConfig(cmd)
				if err != nil {
					return watch.Target{}, err
				}
				c, err := a.newClient(next)
				if err != nil {
					return watch.Target{}, err
				}
				current = c
				debugOutput = next.Debug
				return watch.Target{Source: c, Interval: next.WatchInterval}, nil
			}
			sink := func(payload client.Payload, err error) {
				out.Heading(time.Now().Format(time.RFC3339))
				if debugOutput {
					out.Debug(current.LastDebugRecord())
				}
				if code := current.LastErrorCode(); code != apierr.None {
					out.Error(code, current.LastError())
					return
				}
				if err != nil {
					a.logger.Warn("poll failed", log.Err(err))
					return
				}
				if err := out.Payload(payload); err != nil {
					a.logger.Warn("render failed", log.Err(err))
				}
			}

			w := watch.New(watch.Config{ConfigPath: a.configPath()}, load, sink, a.logger)
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().DurationVar(&a.flags.WatchInterval, "interval", a.flags.WatchInterval, "poll interval")
	return cmd
}
