package content

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"charm.land/log/v2"
	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// SchemaConstraint is the manifest schema range this build reads.
const SchemaConstraint = "^1"

const wordsPerMinute = 200

// DirSource reads content from a directory:
//
//	manifest.toml    optional, schema = "1.x.y"
//	posts/*.md       front matter between +++ (TOML) or --- (YAML) lines
//	quests.toml      [[quests]] tables
//	items.toml       [[items]] tables
//	contacts/        contact messages are written here
type DirSource struct {
	Dir      string
	Debounce time.Duration
	Logger   *log.Logger
}

// NewDirSource returns a source for dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir, Debounce: 250 * time.Millisecond}
}

// Manifest describes a content directory.
type Manifest struct {
	Schema string `toml:"schema"`
	Title  string `toml:"title"`
}

func (s *DirSource) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

// Manifest reads and checks manifest.toml. A missing manifest is treated as
// the current schema.
func (s *DirSource) Manifest() (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(filepath.Join(s.Dir, "manifest.toml"))
	if errors.Is(err, fs.ErrNotExist) {
		return Manifest{Schema: "1.0.0"}, nil
	}
	if err != nil {
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := toml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse manifest: %w", err)
	}

	version, err := semver.NewVersion(m.Schema)
	if err != nil {
		return m, fmt.Errorf("%w: %q: %v", ErrSchema, m.Schema, err)
	}
	constraint, err := semver.NewConstraint(SchemaConstraint)
	if err != nil {
		return m, err
	}
	if !constraint.Check(version) {
		return m, fmt.Errorf("%w: %s does not satisfy %s", ErrSchema, version, SchemaConstraint)
	}
	return m, nil
}

// Catalog loads every published post summary, quest and item.
func (s *DirSource) Catalog(ctx context.Context) (Catalog, error) {
	if _, err := s.Manifest(); err != nil {
		return Catalog{}, err
	}

	posts, err := s.posts(ctx)
	if err != nil {
		return Catalog{}, err
	}
	var cat Catalog
	for _, p := range posts {
		cat.Posts = append(cat.Posts, p.PostSummary)
	}

	var quests struct {
		Quests []Quest `toml:"quests"`
	}
	if err := readTOML(filepath.Join(s.Dir, "quests.toml"), &quests); err != nil {
		return Catalog{}, err
	}
	cat.Quests = quests.Quests

	var items struct {
		Items []Item `toml:"items"`
	}
	if err := readTOML(filepath.Join(s.Dir, "items.toml"), &items); err != nil {
		return Catalog{}, err
	}
	cat.Items = items.Items
	return cat, nil
}

// Post loads one published post.
func (s *DirSource) Post(ctx context.Context, slug string) (Post, error) {
	posts, err := s.posts(ctx)
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, fmt.Errorf("post %q: %w", slug, ErrNotFound)
}

// SendContact stores msg as a TOML file under contacts/.
func (s *DirSource) SendContact(_ context.Context, msg ContactMessage) error {
	dir := filepath.Join(s.Dir, "contacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create contacts dir: %w", err)
	}
	data, err := toml.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal contact: %w", err)
	}
	name := time.Now().UTC().Format("20060102T150405") + "-" + uuid.NewString() + ".toml"
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write contact: %w", err)
	}
	return nil
}

func (s *DirSource) posts(ctx context.Context) ([]Post, error) {
	paths, err := filepath.Glob(filepath.Join(s.Dir, "posts", "*.md"))
	if err != nil {
		return nil, err
	}

	var posts []Post
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read post: %w", err)
		}
		post, err := ParsePost(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if post.Slug == "" {
			post.Slug = strings.TrimSuffix(filepath.Base(path), ".md")
		}
		if !post.IsPublished() {
			continue
		}
		posts = append(posts, post)
	}

	// Featured first, then newest.
	slices.SortStableFunc(posts, func(a, b Post) int {
		if a.Featured != b.Featured {
			if a.Featured {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
	return posts, nil
}

// ParsePost splits a markdown file into front matter and body.
func ParsePost(data []byte) (Post, error) {
	var post Post
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	delim := strings.TrimSpace(lines[0])
	if delim != "+++" && delim != "---" {
		post.Content = strings.TrimSpace(strings.Join(lines, "\n"))
		post.ReadingTime = readingTime(post.Content)
		return post, nil
	}

	end := slices.IndexFunc(lines[1:], func(l string) bool { return strings.TrimSpace(l) == delim })
	if end < 0 {
		return post, errors.New("unterminated front matter")
	}
	end++
	front := []byte(strings.Join(lines[1:end], "\n"))

	var err error
	if delim == "+++" {
		err = toml.Unmarshal(front, &post.PostSummary)
	} else {
		err = yaml.Unmarshal(front, &post.PostSummary)
	}
	if err != nil {
		return post, fmt.Errorf("front matter: %w", err)
	}

	post.Content = strings.TrimSpace(strings.Join(lines[end+1:], "\n"))
	if post.ReadingTime <= 0 {
		post.ReadingTime = readingTime(post.Content)
	}
	return post, nil
}

func readingTime(body string) int {
	words := len(strings.Fields(body))
	return max(1, int(math.Ceil(float64(words)/wordsPerMinute)))
}

func readTOML(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
