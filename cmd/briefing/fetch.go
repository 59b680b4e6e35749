package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/abelbrown/briefing/internal/gateway"
	"github.com/abelbrown/briefing/internal/logging"
	"github.com/abelbrown/briefing/internal/model"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentFetches = 4

var flagSave bool

var fetchCmd = &cobra.Command{
	Use:   "fetch <topic>...",
	Short: "Print briefings for one or more topics",
	Long: "Fetch prints a briefing per topic. A topic is free text or a preset id/label " +
		"(tech, world, entertainment, sports, business, science).",
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&flagSave, "save", false, "add each briefing to the saved list")
}

// fetched is the outcome for one topic.
type fetched struct {
	Topic  string
	Result model.NewsResult
	Err    error
}

func runFetch(cmd *cobra.Command, args []string) error {
	logging.InitWriter(os.Stderr, log.WarnLevel)

	topics, err := resolveTopics(args)
	if err != nil {
		return err
	}

	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.requireKey(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	var failed []error
	for i, f := range fetchTopics(ctx, d.gateway, topics) {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if f.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", f.Err)
			failed = append(failed, f.Err)
			continue
		}
		printBriefing(out, f.Topic, f.Result)

		if flagSave {
			if _, _, err := d.saved.Add(f.Result, f.Topic); err != nil {
				failed = append(failed, fmt.Errorf("saving %q: %w", f.Topic, err))
			}
		}
	}
	return errors.Join(failed...)
}

// resolveTopics maps preset ids and labels to their queries and trims the rest.
func resolveTopics(args []string) ([]string, error) {
	topics := make([]string, 0, len(args))
	for _, arg := range args {
		if p, ok := model.PresetByID(arg); ok {
			topics = append(topics, p.Query)
			continue
		}
		t := strings.TrimSpace(arg)
		if t == "" {
			return nil, errors.New("empty topic")
		}
		topics = append(topics, t)
	}
	return topics, nil
}

// fetchTopics fetches every topic concurrently, one request each. Results
// come back in argument order; a failed topic does not cancel the others.
func fetchTopics(ctx context.Context, gw *gateway.Gateway, topics []string) []fetched {
	results := make([]fetched, len(topics))

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)
	for i, topic := range topics {
		g.Go(func() error {
			res, err := gw.Fetch(ctx, topic)
			results[i] = fetched{Topic: topic, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func printBriefing(w io.Writer, topic string, res model.NewsResult) {
	fmt.Fprintf(w, "== Noticias de %s ==\n\n", topic)
	fmt.Fprintln(w, strings.TrimSpace(res.Summary))
	if len(res.Sources) == 0 {
		return
	}
	fmt.Fprintln(w, "\nFuentes:")
	for _, s := range res.Sources {
		fmt.Fprintf(w, "  - %s <%s>\n", s.Title, s.URI)
	}
}
