// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

// Package densecli provides the Cobra command tree for the luadense
// binary: "format" reads JSON-encoded Lua ASTs and writes dense text,
// "serve" runs the HTTP formatting service. Structured the way
// internal/luac provides luac.New() and cmd/zb-luac just calls it.
package densecli

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"zombiezen.com/go/log"
	"zombiezen.com/go/xcontext"

	"github.com/luadense/luadense/generator"
	"github.com/luadense/luadense/internal/denseconfig"
	"github.com/luadense/luadense/internal/densecache"
	"github.com/luadense/luadense/internal/denseserve"
	"github.com/luadense/luadense/internal/xio"
	"github.com/luadense/luadense/luaast"
)

type globalOptions struct {
	debug  bool
	config *denseconfig.Config
}

// New returns the root "luadense" command.
func New() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "luadense",
		Short:         "format Lua ASTs into dense source text",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	g := new(globalOptions)
	rootCommand.PersistentFlags().BoolVar(&g.debug, "debug", false, "show debugging output")
	rootCommand.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initLogging(g.debug)
		cfg, err := denseconfig.Load()
		if err != nil {
			return err
		}
		g.config = cfg
		return nil
	}

	rootCommand.AddCommand(
		newFormatCommand(g),
		newServeCommand(g),
	)
	return rootCommand
}

type formatOptions struct {
	columnBudget int
	output       string
	concurrency  int
}

func newFormatCommand(g *globalOptions) *cobra.Command {
	c := &cobra.Command{
		Use:                   "format [options] [FILE [...]]",
		Short:                 "format one or more JSON-encoded Lua ASTs",
		DisableFlagsInUseLine: true,
		Args:                  cobra.ArbitraryArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	opts := new(formatOptions)
	c.Flags().IntVar(&opts.columnBudget, "width", 0, "column `budget` for the output (0 uses the configured default)")
	c.Flags().StringVarP(&opts.output, "output", "o", "", "write output to `path` instead of stdout (must be a file when formatting a single input)")
	c.Flags().IntVar(&opts.concurrency, "jobs", 4, "maximum number of files to format concurrently")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runFormat(cmd.Context(), cmd.OutOrStdout(), g, opts, args)
	}
	return c
}

func runFormat(ctx context.Context, stdout io.Writer, g *globalOptions, opts *formatOptions, files []string) error {
	columnBudget := opts.columnBudget
	if columnBudget <= 0 {
		columnBudget = g.config.ColumnBudget
	}
	if columnBudget <= 0 {
		columnBudget = terminalColumnBudget()
	}

	if len(files) == 0 {
		return formatOne(ctx, os.Stdin, stdout, columnBudget)
	}
	outputPath := opts.output
	if len(files) == 1 && outputPath == "" && g.config.OutputDir != "" {
		outputPath = filepath.Join(g.config.OutputDir, strings.TrimSuffix(filepath.Base(files[0]), filepath.Ext(files[0]))+".lua")
	}
	if len(files) == 1 && outputPath != "" {
		return formatFileToFile(files[0], outputPath, columnBudget)
	}
	if opts.output != "" {
		return fmt.Errorf("--output cannot be used with more than one input file")
	}

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(max(1, opts.concurrency))
	results := make([]string, len(files))
	for i, name := range files {
		grp.Go(func() error {
			if grpCtx.Err() != nil {
				return grpCtx.Err()
			}
			f, err := os.Open(name)
			if err != nil {
				return err
			}
			defer f.Close()
			var buf strings.Builder
			if err := formatOne(grpCtx, f, &buf, columnBudget); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = buf.String()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}
	for _, text := range results {
		if _, err := io.WriteString(stdout, text); err != nil {
			return err
		}
	}
	return nil
}

func formatFileToFile(inputPath, outputPath string, columnBudget int) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	var written xio.WriteCounter
	if err := formatOne(context.Background(), f, io.MultiWriter(out, &written), columnBudget); err != nil {
		return err
	}
	log.Debugf(context.Background(), "wrote %d bytes to %s", written, outputPath)
	return nil
}

func formatOne(ctx context.Context, r io.Reader, w io.Writer, columnBudget int) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read ast: %w", err)
	}
	block := new(luaast.Block)
	if err := block.UnmarshalJSON(body); err != nil {
		return fmt.Errorf("decode ast: %w", err)
	}

	g := generator.New(columnBudget)
	g.WriteBlock(block)
	_, err = io.WriteString(w, g.IntoText())
	return err
}

// terminalColumnBudget returns the terminal's column count when stdout
// is a TTY and the spec's default of 80 otherwise, the same
// terminal-size probing cmd/zb/store.go performs for progress output.
// runFormat uses it only when neither --width nor the configured column
// budget is positive.
func terminalColumnBudget() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return generator.DefaultColumnBudget
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return generator.DefaultColumnBudget
	}
	return width
}

type serveOptions struct {
	addr string
}

func newServeCommand(g *globalOptions) *cobra.Command {
	c := &cobra.Command{
		Use:                   "serve [options]",
		Short:                 "run the HTTP formatting service",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	opts := new(serveOptions)
	c.Flags().StringVar(&opts.addr, "addr", "localhost:8080", "`address` to listen on")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), g, opts)
	}
	return c
}

func runServe(ctx context.Context, g *globalOptions, opts *serveOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cache, err := densecache.Open(g.config.CacheDB)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	cacheCloser := xio.CloseOnce(cache)
	defer func() {
		if err := cacheCloser.Close(); err != nil {
			log.Errorf(ctx, "%v", err)
		}
	}()

	srv := &denseserve.Server{Cache: cache}
	httpServer := &http.Server{
		Addr:    opts.addr,
		Handler: srv.NewHandler(),
	}
	closer := xcontext.CloseWhenDone(ctx, httpServer)
	defer closer.Close()

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	log.Infof(ctx, "Listening on %s", ln.Addr())
	if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.Warnf(ctx, "systemd notify: %v", err)
	} else if ok {
		log.Debugf(ctx, "Notified systemd that we are ready")
	}

	err = httpServer.Serve(ln)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

var initLogOnce sync.Once

func initLogging(debug bool) {
	initLogOnce.Do(func() {
		minLogLevel := log.Info
		if debug {
			minLogLevel = log.Debug
		}
		log.SetDefault(&log.LevelFilter{
			Min:    minLogLevel,
			Output: log.New(os.Stderr, "luadense: ", log.StdFlags, nil),
		})
	})
}
