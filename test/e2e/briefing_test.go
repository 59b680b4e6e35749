package e2e

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	expect "github.com/Netflix/go-expect"
	"github.com/creack/pty"
)

// buildBriefing builds the briefing binary into a temp dir.
func buildBriefing(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "briefing")

	rootDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	// test/e2e -> module root
	rootDir = filepath.Join(rootDir, "..", "..")

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/briefing")
	cmd.Dir = rootDir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return binPath
}

// fakeGemini serves groundedResponse and counts requests.
func fakeGemini(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, groundedResponse)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

type session struct {
	t       *testing.T
	cmd     *exec.Cmd
	console *expect.Console
	output  *bytes.Buffer
	home    string
}

// start runs the binary with the console's terminal as its stdio, so keys
// sent to the console reach the program and its screen output is what the
// console reads back.
func start(t *testing.T, binPath, homeDir string) *session {
	t.Helper()

	var out bytes.Buffer
	console, err := expect.NewConsole(
		expect.WithStdout(&out),
		expect.WithDefaultTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("failed to create console: %v", err)
	}
	t.Cleanup(func() { console.Close() })

	if err := pty.Setsize(console.Tty(), &pty.Winsize{Cols: 120, Rows: 40}); err != nil {
		t.Fatalf("failed to set pty size: %v", err)
	}

	cmd := exec.Command(binPath)
	cmd.Dir = homeDir
	cmd.Env = append(os.Environ(), "HOME="+homeDir, "GEMINI_API_KEY=dummy-key", "TERM=xterm-256color")
	cmd.Stdin = console.Tty()
	cmd.Stdout = console.Tty()
	cmd.Stderr = console.Tty()

	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start briefing: %v", err)
	}
	t.Cleanup(func() { _ = cmd.Process.Kill() })

	return &session{t: t, cmd: cmd, console: console, output: &out, home: homeDir}
}

func (s *session) expect(text string) {
	s.t.Helper()
	if _, err := s.console.ExpectString(text); err != nil {
		if logs, lerr := filepath.Glob(filepath.Join(s.home, ".briefing", "logs", "*.log")); lerr == nil && len(logs) > 0 {
			if data, rerr := os.ReadFile(logs[0]); rerr == nil {
				s.t.Logf("log:\n%s", data)
			}
		}
		s.t.Fatalf("%q not found: %v\nScreen:\n%s", text, err, s.output.String())
	}
}

func (s *session) send(keys string) {
	s.t.Helper()
	time.Sleep(200 * time.Millisecond) // let the UI settle
	if _, err := s.console.Send(keys); err != nil {
		s.t.Fatalf("failed to send %q: %v", keys, err)
	}
}

func (s *session) quit() {
	s.t.Helper()
	s.send("q")

	// Keep reading so the program is never blocked writing its last frame.
	go func() { _, _ = s.console.ExpectEOF() }()

	done := make(chan error, 1)
	go func() { done <- s.cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.t.Error("process did not exit after 'q'")
	}
}

func TestE2E_FetchPresetAndSave(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	binPath := buildBriefing(t)
	srv, calls := fakeGemini(t)

	homeDir := t.TempDir()
	if err := seedHome(homeDir, srv.URL); err != nil {
		t.Fatalf("failed to seed home: %v", err)
	}

	s := start(t, binPath, homeDir)

	s.expect("te gustaría informarte")
	s.send("1")
	s.expect("Noticias de")
	s.expect("Fixture briefing body")
	s.expect("Fixture Source")

	s.send("s")
	s.expect("Guardado")

	s.send("\x1b") // esc back to greeting
	s.send("g")
	s.expect("Tecnología")
	s.expect("Fixture Topic")

	s.send("\x1b")
	s.quit()

	if got := calls.Load(); got != 1 {
		t.Errorf("expected exactly one upstream request, got %d", got)
	}
}

func TestE2E_OpenSavedWithoutFetching(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	binPath := buildBriefing(t)
	srv, calls := fakeGemini(t)

	homeDir := t.TempDir()
	if err := seedHome(homeDir, srv.URL); err != nil {
		t.Fatalf("failed to seed home: %v", err)
	}

	s := start(t, binPath, homeDir)

	s.expect("te gustaría informarte")
	s.send("g")
	s.expect("Fixture Topic")
	s.send("\r")
	s.expect("Saved fixture summary")
	s.expect("Old Source")
	s.quit()

	if got := calls.Load(); got != 0 {
		t.Errorf("opening a saved briefing should not call upstream, got %d requests", got)
	}
}
