package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abelbrown/briefing/internal/config"
	"github.com/spf13/cobra"
)

var (
	flagTail   int
	flagKind   string
	flagLevel  string
	flagRawLog bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print the tail of the JSONL event log",
	Args:  cobra.NoArgs,
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().IntVarP(&flagTail, "tail", "n", 50, "number of recent events to show")
	eventsCmd.Flags().StringVar(&flagKind, "kind", "", "filter by event kind prefix (e.g. gateway)")
	eventsCmd.Flags().StringVar(&flagLevel, "level", "", "minimum level: debug, info, warn, error")
	eventsCmd.Flags().BoolVar(&flagRawLog, "json", false, "print raw JSON lines")
}

// eventRecord mirrors otel.Event for decoding. Decoding into a local type
// keeps old log lines readable when the event schema grows.
type eventRecord struct {
	Time      time.Time `json:"t"`
	Level     string    `json:"level"`
	Kind      string    `json:"kind"`
	Comp      string    `json:"comp"`
	SessionID string    `json:"session_id"`
	Topic     string    `json:"topic"`
	Gen       int       `json:"gen"`
	DurMs     float64   `json:"dur_ms"`
	Count     int       `json:"count"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Err       string    `json:"err"`
	Msg       string    `json:"msg"`
}

type eventFilter struct {
	kind     string
	minLevel int
}

func (f eventFilter) match(ev eventRecord) bool {
	if f.kind != "" && !strings.HasPrefix(ev.Kind, f.kind) {
		return false
	}
	return levelRank(ev.Level) >= f.minLevel
}

// levelRank returns a numeric rank for filtering (higher = more severe).
func levelRank(level string) int {
	switch level {
	case "info":
		return 1
	case "warn":
		return 2
	case "error":
		return 3
	default:
		return 0
	}
}

func runEvents(cmd *cobra.Command, args []string) error {
	path := config.EventsPath()
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("event log not found at %s (run the TUI first): %w", path, err)
	}
	defer f.Close()

	filter := eventFilter{kind: flagKind, minLevel: levelRank(flagLevel)}
	out := cmd.OutOrStdout()
	for _, l := range readTailLines(f, flagTail, filter.match) {
		if flagRawLog {
			fmt.Fprintln(out, string(l.raw))
			continue
		}
		fmt.Fprintln(out, formatEvent(l.ev))
	}
	return nil
}

type parsedLine struct {
	ev  eventRecord
	raw []byte
}

// readTailLines returns the last n lines of r that decode and match.
func readTailLines(r io.Reader, n int, match func(eventRecord) bool) []parsedLine {
	if n <= 0 {
		return nil
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 256*1024)

	ring := make([]parsedLine, 0, n)
	for scanner.Scan() {
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev eventRecord
		if json.Unmarshal(raw, &ev) != nil {
			continue
		}
		if !match(ev) {
			continue
		}
		// scanner reuses its buffer
		rawCopy := make([]byte, len(raw))
		copy(rawCopy, raw)

		if len(ring) < n {
			ring = append(ring, parsedLine{ev: ev, raw: rawCopy})
		} else {
			copy(ring, ring[1:])
			ring[n-1] = parsedLine{ev: ev, raw: rawCopy}
		}
	}
	return ring
}

func formatEvent(ev eventRecord) string {
	lvl := strings.ToUpper(ev.Level)
	if lvl == "" {
		lvl = "?"
	}
	parts := []string{fmt.Sprintf("%s %-5s [%-7s] %-16s", ev.Time.Format("15:04:05.000"), lvl, ev.Comp, ev.Kind)}

	if ev.Msg != "" {
		parts = append(parts, ev.Msg)
	}
	if ev.From != "" || ev.To != "" {
		parts = append(parts, ev.From+"→"+ev.To)
	}
	if ev.Topic != "" {
		parts = append(parts, fmt.Sprintf("topic=%q", ev.Topic))
	}
	if ev.Gen > 0 {
		parts = append(parts, fmt.Sprintf("gen=%d", ev.Gen))
	}
	if ev.DurMs > 0 {
		parts = append(parts, fmt.Sprintf("(%.*fms)", durPrecision(ev.DurMs), ev.DurMs))
	}
	if ev.Count > 0 {
		parts = append(parts, fmt.Sprintf("n=%d", ev.Count))
	}
	if ev.Err != "" {
		parts = append(parts, "err="+ev.Err)
	}
	return strings.Join(parts, " ")
}

func durPrecision(ms float64) int {
	if ms >= 100 {
		return 0
	}
	if ms >= 1 {
		return 1
	}
	return 2
}
