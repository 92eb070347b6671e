package tracker

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/fakeyudi/pathwise/internal/aggregate"
	"github.com/fakeyudi/pathwise/internal/category"
	"github.com/fakeyudi/pathwise/internal/config"
	"github.com/fakeyudi/pathwise/internal/gitprobe"
	"github.com/fakeyudi/pathwise/internal/rotation"
	"github.com/fakeyudi/pathwise/internal/store"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTracker(t *testing.T) (*Tracker, *clock) {
	t.Helper()
	s, err := store.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	c := &clock{t: time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)}
	return &Tracker{
		Store:    s,
		Rotation: &rotation.Manager{Store: s, AutoReset: true, Now: c.now},
		Config:   config.Defaults(),
		Home:     "/home/me",
		Now:      c.now,
		LookPath: func(file string) (string, error) {
			if file == "go" || file == "git" {
				return "/usr/bin/" + file, nil
			}
			return "", errors.New("not found")
		},
	}, c
}

func TestChangeDirTracksVisitsAndTime(t *testing.T) {
	tr, c := newTracker(t)
	var st State

	st, err := tr.ChangeDir(st, "/home/me/src/app")
	if err != nil {
		t.Fatal(err)
	}
	if st.Dir != "~/src/app" || st.Enter != c.t.Unix() || st.Start != c.t.Unix() {
		t.Fatalf("unexpected state %+v", st)
	}
	start := st.Start

	c.advance(90 * time.Second)
	if st, err = tr.ChangeDir(st, "/tmp"); err != nil {
		t.Fatal(err)
	}
	if st.Start != start {
		t.Error("session start must not move")
	}

	c.advance(2 * time.Second)
	if st, err = tr.ChangeDir(st, "/home/me/src/app"); err != nil {
		t.Fatal(err)
	}

	today := tr.Store.Today()
	if len(today) != 2 {
		t.Fatalf("want 2 directories, got %+v", today)
	}
	if today[0].Path != "~/src/app" || today[0].Visits != 2 || today[0].Seconds != 90 {
		t.Errorf("app record: %+v", today[0])
	}
	if today[1].Path != "/tmp" || today[1].Seconds != 0 {
		t.Errorf("2s stay in /tmp is below min_time: %+v", today[1])
	}
	if n := len(tr.Store.Sessions()); n != 1 {
		t.Errorf("want 1 session, got %d", n)
	}
}

func TestChangeDirKeepsVisitWhenStayFails(t *testing.T) {
	tr, c := newTracker(t)
	st, err := tr.ChangeDir(State{}, "/srv")
	if err != nil {
		t.Fatal(err)
	}
	// A directory in place of the session log makes the stay write fail.
	if err := os.Mkdir(tr.Store.Path(store.SessionsFile), 0o755); err != nil {
		t.Fatal(err)
	}
	c.advance(time.Minute)

	st, err = tr.ChangeDir(st, "/opt")
	if err == nil {
		t.Error("want the stay error reported")
	}
	if st.Dir != "/opt" || st.Enter != c.t.Unix() {
		t.Errorf("state should move to the new directory, got %+v", st)
	}
	today := tr.Store.Today()
	if len(today) != 2 || today[1].Path != "/opt" || today[1].Visits != 1 {
		t.Errorf("new visit should be recorded: %+v", today)
	}
}

func TestChangeDirSkipsHomeAndRoot(t *testing.T) {
	tr, c := newTracker(t)
	st, _ := tr.ChangeDir(State{}, "/home/me/src")
	c.advance(time.Minute)

	for _, dir := range []string{"/home/me", "/"} {
		got, err := tr.ChangeDir(st, dir)
		if err != nil {
			t.Fatal(err)
		}
		if got.Dir != "" || got.Enter != 0 {
			t.Errorf("%s should clear the state, got %+v", dir, got)
		}
		st = got
	}
	if len(tr.Store.Today()) != 1 {
		t.Errorf("home and / must not be recorded: %+v", tr.Store.Today())
	}
}

func TestChangeDirWithoutTimeTracking(t *testing.T) {
	tr, c := newTracker(t)
	tr.Config.TrackTime = false
	st, _ := tr.ChangeDir(State{}, "/srv")
	c.advance(time.Hour)
	if _, err := tr.ChangeDir(st, "/opt"); err != nil {
		t.Fatal(err)
	}
	if tr.Store.Today()[0].Seconds != 0 || len(tr.Store.Sessions()) != 0 {
		t.Error("time must not be tracked when disabled")
	}
}

func TestExitRecordsStay(t *testing.T) {
	tr, c := newTracker(t)
	st, _ := tr.ChangeDir(State{}, "/srv")
	c.advance(10 * time.Second)
	if err := tr.Exit(st); err != nil {
		t.Fatal(err)
	}
	if got := tr.Store.Today()[0].Seconds; got != 10 {
		t.Errorf("want 10s, got %d", got)
	}
}

func TestCommand(t *testing.T) {
	tr, _ := newTracker(t)
	for _, line := range [][2]string{
		{"go test ./...", "go test ./..."},
		{"gst", "git status"},
		{"cd ..", "cd .."},
		{"unknowncmd", "unknowncmd"},
	} {
		if err := tr.Command("/home/me/src", line[0], line[1]); err != nil {
			t.Fatal(err)
		}
	}
	uses := tr.Store.ToolUses()
	if len(uses) != 2 {
		t.Fatalf("want 2 tool records, got %+v", uses)
	}
	if uses[0].Tool != "go" || uses[0].Kind != store.KindKnown || uses[0].Path != "~/src" {
		t.Errorf("go record: %+v", uses[0])
	}
	if uses[1].Tool != "git" || uses[1].Alias != "gst=status" {
		t.Errorf("alias record: %+v", uses[1])
	}

	tr.Config.TrackTools = false
	if err := tr.Command("/srv", "go build", "go build"); err != nil {
		t.Fatal(err)
	}
	if len(tr.Store.ToolUses()) != 2 {
		t.Error("disabled tool tracking still recorded")
	}
}

func TestCommit(t *testing.T) {
	tr, _ := newTracker(t)
	tr.Git = &gitprobe.Probe{Runner: func(_ string, args ...string) (string, error) {
		if args[0] == "rev-parse" {
			return "deadbeef\n", nil
		}
		return "fix: null deref\n", nil
	}}
	if err := tr.Commit("/home/me/src/app"); err != nil {
		t.Fatal(err)
	}
	commits := tr.Store.Commits()
	if len(commits) != 1 || commits[0].Hash != "deadbeef" || commits[0].Path != "~/src/app" {
		t.Fatalf("unexpected commits %+v", commits)
	}
	if tr.Store.GitTodayCounts()["~/src/app"] != 1 {
		t.Error("git.today not incremented")
	}
}

func TestCommitOutsideRepository(t *testing.T) {
	tr, _ := newTracker(t)
	exitErr := exec.Command("sh", "-c", "exit 128").Run()
	tr.Git = &gitprobe.Probe{Runner: func(string, ...string) (string, error) { return "", exitErr }}
	if err := tr.Commit("/tmp"); err != nil {
		t.Fatalf("non-repository should be ignored, got %v", err)
	}
	if len(tr.Store.Commits()) != 0 {
		t.Error("nothing should be recorded")
	}
}

func TestShellAssignments(t *testing.T) {
	st := State{Dir: "~/it's here", Enter: 10, Start: 5}
	want := `_PATHWISE_DIR='~/it'\''s here'; _PATHWISE_ENTER=10; _PATHWISE_START=5`
	if got := st.ShellAssignments(); got != want {
		t.Errorf("want %s\ngot  %s", want, got)
	}
	if got := (State{}).ShellAssignments(); !strings.Contains(got, "_PATHWISE_ENTER=''") {
		t.Errorf("zero enter should be empty: %s", got)
	}

	parsed := ParseState("~/x", "42", "bogus")
	if parsed != (State{Dir: "~/x", Enter: 42}) {
		t.Errorf("ParseState: %+v", parsed)
	}
}

// Feature: pathwise, Property: a stay, a short stay and a commit rank as expected.
func TestVisitCommitAggregate(t *testing.T) {
	tr, c := newTracker(t)
	tr.Git = &gitprobe.Probe{Runner: func(_ string, args ...string) (string, error) {
		if args[0] == "rev-parse" {
			return "c0ffee\n", nil
		}
		return "fix: typo\n", nil
	}}

	st, err := tr.ChangeDir(State{}, "/a")
	if err != nil {
		t.Fatal(err)
	}
	c.advance(10 * time.Second)
	if st, err = tr.ChangeDir(st, "/b"); err != nil {
		t.Fatal(err)
	}
	c.advance(3 * time.Second)
	if st, err = tr.ChangeDir(st, "/home/me"); err != nil {
		t.Fatal(err)
	}
	if err := tr.Commit("/a"); err != nil {
		t.Fatal(err)
	}

	entries := aggregate.FromStore(tr.Store, aggregate.ByTime, 0)
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %+v", entries)
	}
	a, b := entries[0], entries[1]
	if a.Path != "/a" || a.Visits != 1 || a.Seconds != 10 || a.Commits != 1 {
		t.Errorf("/a: %+v", a)
	}
	if b.Path != "/b" || b.Visits != 1 || b.Seconds != 0 || b.Commits != 0 {
		t.Errorf("/b (3s is below min_time): %+v", b)
	}

	commits := tr.Store.Commits()
	if len(commits) != 1 || category.Categorize(commits[0].Message).Category != category.Fix {
		t.Errorf("commit should categorize as fix: %+v", commits)
	}
}
