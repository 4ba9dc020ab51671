package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/goliatone/go-jobform"
	"github.com/goliatone/go-jobform/internal/config"
	"github.com/goliatone/go-jobform/internal/logging"
	"github.com/goliatone/go-jobform/internal/server"
	"github.com/goliatone/go-jobform/pkg/contract"
	"github.com/goliatone/go-jobform/pkg/renderers/tui"
)

var errContractDrift = errors.New("contract does not match the form")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "jobform: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	command := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}

	switch command {
	case "serve":
		return serve(ctx, args, stderr)
	case "fill":
		return fill(ctx, args, stdout, stderr)
	case "contract":
		return checkContract(ctx, args, stdout, stderr)
	case "help":
		usage(stderr)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "Usage: %s [serve|fill|contract] [flags]\n\n", name)
	fmt.Fprintln(w, "  serve     serve the application form over HTTP (default)")
	fmt.Fprintln(w, "  fill      fill in the application form in the terminal")
	fmt.Fprintln(w, "  contract  print the submission contract, or check documents against the form")
}

type commonFlags struct {
	config *string
	env    *string
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs, commonFlags{
		config: fs.String("config", "", "config file (YAML or JSON); defaults to $"+config.PathEnv),
		env:    fs.String("env", "", "dotenv file to load before reading the environment"),
	}
}

func (f commonFlags) load() (*config.Config, error) {
	var dotenv []string
	if *f.env != "" {
		dotenv = append(dotenv, *f.env)
	}
	return config.Load(*f.config, dotenv...)
}

func serve(ctx context.Context, args []string, stderr io.Writer) error {
	fs, common := newFlagSet("serve", stderr)
	addr := fs.String("addr", "", "listen address, overrides the configured one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	log := logging.Init(cfg.LogLevel, cfg.LogFormat)

	if _, err := jobform.LoadContract(ctx); err != nil {
		log.Warn("submission contract does not match the form", "error", err)
	}

	submitter, err := jobform.NewSubmitter(cfg.SubmitURL, log)
	if err != nil {
		return err
	}
	theme, err := jobform.ThemeFromManifest(cfg.Theme.Manifest(), cfg.Theme.Variant)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		Logger:         log,
		Submitter:      submitter,
		Drafts:         server.NewDraftStore(cfg.DraftTTL, nil, server.WithMaxDrafts(cfg.MaxDrafts)),
		Title:          cfg.Page.Title,
		Intro:          cfg.Page.Intro,
		Theme:          theme,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, cfg.Addr, cfg.ShutdownGrace)
}

func fill(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("fill", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	log := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	submitter, err := jobform.NewSubmitter(cfg.SubmitURL, log)
	if err != nil {
		return err
	}

	session, err := tui.New(
		tui.WithPromptDriver(tui.NewSurveyDriver(stdout)),
		tui.WithSubmitter(submitter),
		tui.WithLogger(log),
	)
	if err != nil {
		return err
	}

	if _, err := session.Run(ctx); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(stdout, "Aborted.")
			return nil
		}
		return err
	}
	return nil
}

type violation struct {
	file    string
	message string
}

func checkContract(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("contract", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s contract [paths...]\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintln(fs.Output(), "Without paths the embedded contract is printed. With paths each OpenAPI")
		fmt.Fprintln(fs.Output(), "document is checked against the fields and rules of the form.")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	paths := fs.Args()
	if len(paths) == 0 {
		_, err := stdout.Write(contract.Raw())
		return err
	}

	var violations []violation
	for _, path := range paths {
		found, err := checkFile(ctx, path)
		if err != nil {
			return fmt.Errorf("check %s: %w", path, err)
		}
		violations = append(violations, found...)
	}

	if len(violations) == 0 {
		fmt.Fprintf(stdout, "%d document(s) match the form\n", len(paths))
		return nil
	}
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			return violations[i].message < violations[j].message
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(stderr, "%s: %s\n", v.file, v.message)
	}
	return errContractDrift
}

func checkFile(ctx context.Context, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := contract.Parse(ctx, raw)
	if err != nil {
		return nil, err
	}

	err = doc.Verify()
	if err == nil {
		return nil, nil
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	out := make([]violation, 0, len(errs))
	for _, e := range errs {
		out = append(out, violation{file: path, message: e.Error()})
	}
	return out, nil
}
