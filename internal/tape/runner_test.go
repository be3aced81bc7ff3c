package tape_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/journalos/internal/apps"
	"github.com/Gaurav-Gosain/journalos/internal/content"
	"github.com/Gaurav-Gosain/journalos/internal/desktop"
	"github.com/Gaurav-Gosain/journalos/internal/tape"
)

type fakeSource struct {
	post content.Post
}

func (s *fakeSource) Catalog(context.Context) (content.Catalog, error) {
	return content.Catalog{Posts: []content.PostSummary{s.post.PostSummary}}, nil
}

func (s *fakeSource) Post(_ context.Context, slug string) (content.Post, error) {
	if slug == s.post.Slug {
		return s.post, nil
	}
	return content.Post{}, content.ErrNotFound
}

func newRunner(t *testing.T) *tape.Runner {
	t.Helper()
	d := desktop.New(desktop.Options{
		Source: &fakeSource{post: content.Post{
			PostSummary: content.PostSummary{Slug: "go-tips", Title: "Go Tips", ReadXP: 25},
			Content:     "Accept interfaces, return structs.",
		}},
	})
	t.Cleanup(d.Close)
	return tape.NewRunner(d)
}

func play(t *testing.T, r *tape.Runner, script string) error {
	t.Helper()
	cmds, err := tape.Parse(script)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return r.Run(context.Background(), cmds)
}

func TestRunnerReadsPost(t *testing.T) {
	r := newRunner(t)
	err := play(t, r, `Set Width 80
Set Height 24
Open journal
Enter
Wait /Accept interfaces/
Screenshot reader
Ctrl+W
`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	d := r.Desktop
	if d.Width != 80 || d.Height != 24 {
		t.Errorf("size = %dx%d, want 80x24", d.Width, d.Height)
	}
	if len(d.Catalog.Posts) != 1 {
		t.Errorf("catalog was not loaded")
	}
	if n := d.Registry.Len(); n != 1 {
		t.Errorf("open windows = %d, want 1", n)
	}
	if _, ok := d.Registry.Instance(apps.JournalID); !ok {
		t.Error("closing the reader closed the journal")
	}

	if len(r.Screenshots) != 1 {
		t.Fatalf("screenshots = %d, want 1", len(r.Screenshots))
	}
	shot := r.Screenshots[0]
	if shot.Name != "reader" || shot.Line != 6 {
		t.Errorf("screenshot = %q at line %d", shot.Name, shot.Line)
	}
	if !strings.Contains(shot.Text(), "Accept interfaces") {
		t.Error("screenshot does not show the post")
	}
}

func TestRunnerWindowCommands(t *testing.T) {
	r := newRunner(t)
	err := play(t, r, `Resize 80 24
Open journal
Open about
Focus journal
Maximize
Minimize about
`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	d := r.Desktop
	if id, _ := d.Registry.Focused(); id != apps.JournalID {
		t.Errorf("focused = %q, want journal", id)
	}
	if inst, _ := d.Registry.Instance(apps.AboutID); !inst.Minimized() {
		t.Error("about is not minimized")
	}
	if !d.Frames[apps.JournalID].Maximized {
		t.Error("journal is not maximized")
	}
}

func TestRunnerSession(t *testing.T) {
	r := newRunner(t)
	if err := play(t, r, "Login ada"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !r.Desktop.Env().Session.IsAuthenticated() {
		t.Fatal("Login did not sign in")
	}
	if err := play(t, r, "Logout"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.Desktop.Env().Session.IsAuthenticated() {
		t.Error("Logout did not sign out")
	}
}

func TestRunnerErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown app", "Open nosuch", "unknown app"},
		{"nothing focused", "Close", "no focused window"},
		{"missing window", "Focus journal", `no window "journal"`},
		{"wait timeout", "Set Timeout 30ms\nWait /never shown/", "did not appear"},
		{"bad setting", "Set Colour red", "unknown setting"},
		{"bad width", "Set Width wide", "invalid Width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := play(t, newRunner(t), tt.script)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestRunnerQuit(t *testing.T) {
	r := newRunner(t)
	err := play(t, r, "Ctrl+Q\nSleep 200ms\nOpen journal")
	if !errors.Is(err, tape.ErrQuit) {
		t.Fatalf("err = %v, want ErrQuit", err)
	}
	if r.Desktop.Registry.Len() != 0 {
		t.Error("commands after quit still ran")
	}
}

func TestRunnerCancelled(t *testing.T) {
	r := newRunner(t)
	cmds, err := tape.Parse("Open journal")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx, cmds); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
