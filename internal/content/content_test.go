package content_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/journalos/internal/content"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParsePost(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantTitle string
		wantXP    int
		wantBody  string
		wantErr   bool
	}{
		{
			name:      "toml front matter",
			data:      "+++\ntitle = \"Hello\"\nread_xp = 25\n+++\n\nBody text.\n",
			wantTitle: "Hello", wantXP: 25, wantBody: "Body text.",
		},
		{
			name:      "yaml front matter",
			data:      "---\ntitle: Hi there\nread_xp: 10\ntags: [go, tui]\n---\nSome words\n",
			wantTitle: "Hi there", wantXP: 10, wantBody: "Some words",
		},
		{
			name:      "crlf line endings",
			data:      "---\r\ntitle: Windows\r\n---\r\nBody\r\n",
			wantTitle: "Windows", wantBody: "Body",
		},
		{
			name:     "no front matter",
			data:     "Just a body",
			wantBody: "Just a body",
		},
		{
			name:    "unterminated",
			data:    "+++\ntitle = \"x\"\n",
			wantErr: true,
		},
		{
			name:    "bad toml",
			data:    "+++\ntitle = \n+++\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := content.ParsePost([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePost() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if post.Title != tt.wantTitle || post.ReadXP != tt.wantXP || post.Content != tt.wantBody {
				t.Errorf("ParsePost() = title %q xp %d body %q", post.Title, post.ReadXP, post.Content)
			}
			if post.ReadingTime < 1 {
				t.Errorf("ReadingTime = %d, want >= 1", post.ReadingTime)
			}
		})
	}
}

func newContentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "manifest.toml"), "schema = \"1.2.0\"\ntitle = \"Test Journal\"\n")
	writeFile(t, filepath.Join(dir, "posts", "older.md"), "+++\ntitle = \"Older\"\ncontent_pillar = \"programming\"\ncreated_at = \"2024-01-01\"\nread_xp = 10\n+++\nOld post.\n")
	writeFile(t, filepath.Join(dir, "posts", "newer.md"), "---\ntitle: Newer\ncontent_pillar: saas-journey\ncreated_at: \"2024-06-01\"\n---\nNew post.\n")
	writeFile(t, filepath.Join(dir, "posts", "featured.md"), "+++\nslug = \"start-here\"\ntitle = \"Start Here\"\nfeatured = true\ncreated_at = \"2023-01-01\"\n+++\nWelcome.\n")
	writeFile(t, filepath.Join(dir, "posts", "draft.md"), "+++\ntitle = \"Draft\"\npublished = false\n+++\nNot yet.\n")
	writeFile(t, filepath.Join(dir, "quests.toml"), `
[[quests]]
quest_id = "q1"
name = "First Steps"
quest_type = "text-input"
correct_answer = "gopher"
xp_reward = 50
item_reward = "badge"
host_post_slug = "older"
difficulty = "easy"
`)
	writeFile(t, filepath.Join(dir, "items.toml"), `
[[items]]
item_id = "badge"
name = "Gopher Badge"
rarity = "rare"
`)
	return dir
}

func TestDirSourceCatalog(t *testing.T) {
	src := content.NewDirSource(newContentDir(t))

	cat, err := src.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}

	var slugs []string
	for _, p := range cat.Posts {
		slugs = append(slugs, p.Slug)
	}
	if want := []string{"start-here", "newer", "older"}; !slices.Equal(slugs, want) {
		t.Errorf("post order = %v, want %v", slugs, want)
	}
	if len(cat.Quests) != 1 || cat.Quests[0].XPReward != 50 {
		t.Errorf("quests = %+v", cat.Quests)
	}
	if item, ok := cat.Item("badge"); !ok || item.Rarity != "rare" {
		t.Errorf("Item(badge) = %+v, %v", item, ok)
	}
	if got := cat.PostsByPillar("programming"); len(got) != 1 || got[0].Slug != "older" {
		t.Errorf("PostsByPillar(programming) = %+v", got)
	}
	if got := cat.PostsByPillar("all"); len(got) != 3 {
		t.Errorf("PostsByPillar(all) returned %d posts", len(got))
	}
}

func TestDirSourcePost(t *testing.T) {
	src := content.NewDirSource(newContentDir(t))

	post, err := src.Post(context.Background(), "older")
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if post.Content != "Old post." || post.ReadXP != 10 {
		t.Errorf("Post() = %+v", post)
	}

	for _, slug := range []string{"draft", "missing"} {
		if _, err := src.Post(context.Background(), slug); !errors.Is(err, content.ErrNotFound) {
			t.Errorf("Post(%q) error = %v, want ErrNotFound", slug, err)
		}
	}
}

func TestDirSourceManifestSchema(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		wantErr error
	}{
		{"compatible", "1.9.3", nil},
		{"next major", "2.0.0", content.ErrSchema},
		{"not semver", "latest", content.ErrSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "manifest.toml"), "schema = \""+tt.schema+"\"\n")

			_, err := content.NewDirSource(dir).Catalog(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Catalog() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDirSourceEmptyDir(t *testing.T) {
	cat, err := content.NewDirSource(t.TempDir()).Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if len(cat.Posts)+len(cat.Quests)+len(cat.Items) != 0 {
		t.Errorf("expected empty catalog, got %+v", cat)
	}
}

func TestDirSourceSendContact(t *testing.T) {
	dir := t.TempDir()
	src := content.NewDirSource(dir)

	msg := content.ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "Hi"}
	if err := src.SendContact(context.Background(), msg); err != nil {
		t.Fatalf("SendContact() error = %v", err)
	}
	files, _ := filepath.Glob(filepath.Join(dir, "contacts", "*.toml"))
	if len(files) != 1 {
		t.Fatalf("got %d contact files, want 1", len(files))
	}
}

func TestDirSourceWatch(t *testing.T) {
	dir := newContentDir(t)
	src := content.NewDirSource(dir)
	src.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- src.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "posts", "fresh.md"), "+++\ntitle = \"Fresh\"\n+++\nbody\n")

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() error = %v", err)
	}
}

func TestHTTPSource(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/content/posts", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"slug": "hello", "title": "Hello", "read_xp": 15, "created_at": "2024-05-01T10:00:00", "tags": nil},
		})
	})
	mux.HandleFunc("GET /api/v1/content/posts/{slug}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("slug") != "hello" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"slug": "hello", "title": "Hello", "content": "# Hello\n\nworld", "quest_id": nil,
		})
	})
	mux.HandleFunc("GET /api/v1/content/quests", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{"quest_id": "q1", "xp_reward": 20, "options": nil}})
	})
	mux.HandleFunc("GET /api/v1/content/items", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{"item_id": "i1", "flavor_text": nil}})
	})
	var contact content.ContactMessage
	mux.HandleFunc("POST /api/v1/contact", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&contact)
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	src := content.NewHTTPSource(srv.URL + "/api/v1/")
	ctx := context.Background()

	cat, err := src.Catalog(ctx)
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if len(cat.Posts) != 1 || cat.Posts[0].ReadXP != 15 || len(cat.Quests) != 1 || len(cat.Items) != 1 {
		t.Errorf("Catalog() = %+v", cat)
	}
	if d, ok := cat.Posts[0].Date(); !ok || d.Year() != 2024 {
		t.Errorf("Date() = %v, %v", d, ok)
	}

	post, err := src.Post(ctx, "hello")
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if post.Title != "Hello" || post.Content == "" {
		t.Errorf("Post() = %+v", post)
	}

	if _, err := src.Post(ctx, "missing"); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("Post(missing) error = %v, want ErrNotFound", err)
	}

	if err := src.SendContact(ctx, content.ContactMessage{Name: "Ada", Message: "hi"}); err != nil {
		t.Fatalf("SendContact() error = %v", err)
	}
	if contact.Name != "Ada" {
		t.Errorf("server got %+v", contact)
	}
}

func TestHTTPSourceStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := content.NewHTTPSource(srv.URL).Catalog(context.Background())
	var statusErr *content.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Errorf("Catalog() error = %v, want StatusError 500", err)
	}
}

func TestQuestCheck(t *testing.T) {
	q := content.Quest{CorrectAnswer: "Gopher"}
	tests := []struct {
		answer string
		want   bool
	}{
		{"gopher", true},
		{"  GOPHER ", true},
		{"rustacean", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := q.Check(tt.answer); got != tt.want {
			t.Errorf("Check(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}

	if !(content.Quest{QuestType: content.QuestCallToAction}).Check("") {
		t.Error("quest without an answer should accept anything")
	}
}

func TestLevelCurve(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{381, 2},
		{382, 3},
		{901, 4},
	}
	for _, tt := range tests {
		if got := content.LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestProgress(t *testing.T) {
	p := content.NewProgress()

	if got := p.ClaimPost("hello", 60); got != 60 {
		t.Errorf("ClaimPost() = %d, want 60", got)
	}
	if got := p.ClaimPost("hello", 60); got != 0 {
		t.Errorf("second ClaimPost() = %d, want 0", got)
	}
	if !p.HasClaimed("hello") {
		t.Error("HasClaimed() = false")
	}

	q := content.Quest{QuestID: "q1", XPReward: 50, ItemReward: "badge"}
	if xp, item := p.CompleteQuest(q); xp != 50 || item != "badge" {
		t.Errorf("CompleteQuest() = %d, %q", xp, item)
	}
	if xp, item := p.CompleteQuest(q); xp != 0 || item != "" {
		t.Errorf("repeat CompleteQuest() = %d, %q", xp, item)
	}

	if p.XP() != 110 || p.Level() != 2 {
		t.Errorf("XP/Level = %d/%d, want 110/2", p.XP(), p.Level())
	}
	if cur, need := p.LevelProgress(); cur != 10 || need != 282 {
		t.Errorf("LevelProgress() = %d/%d, want 10/282", cur, need)
	}
	if !p.Owns("badge") || !slices.Equal(p.Items(), []string{"badge"}) {
		t.Errorf("Items() = %v", p.Items())
	}
	if posts, quests := p.Counts(); posts != 1 || quests != 1 {
		t.Errorf("Counts() = %d, %d", posts, quests)
	}
}

func TestQuestAttempts(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := content.NewProgress()
	p.Now = func() time.Time { return now }

	tests := []struct {
		correct  bool
		failed   int
		hint     bool
		cooldown time.Duration
	}{
		{false, 1, false, 0},
		{false, 2, true, 5 * time.Second},
		{false, 3, true, 10 * time.Second},
		{true, 3, true, 10 * time.Second},
	}
	for i, tt := range tests {
		a := p.RecordAttempt("q1", tt.correct)
		if a.Count != i+1 || a.Failed != tt.failed || a.ShowHint() != tt.hint {
			t.Errorf("attempt %d = %+v, hint %v", i+1, a, a.ShowHint())
		}
		if got := p.Cooldown("q1"); got != tt.cooldown {
			t.Errorf("attempt %d cooldown = %v, want %v", i+1, got, tt.cooldown)
		}
	}

	now = now.Add(4 * time.Second)
	if got := p.Cooldown("q1"); got != 6*time.Second {
		t.Errorf("cooldown after 4s = %v, want 6s", got)
	}
	now = now.Add(time.Minute)
	if got := p.Cooldown("q1"); got != 0 {
		t.Errorf("cooldown after it ran out = %v", got)
	}
	if got := p.Attempts("other"); got.Count != 0 {
		t.Errorf("untouched quest has attempts %+v", got)
	}

	for range 10 {
		p.RecordAttempt("q2", false)
	}
	if got := p.Cooldown("q2"); got != content.MaxCooldown {
		t.Errorf("cooldown = %v, want the %v cap", got, content.MaxCooldown)
	}
}
