package notes

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/paravault/para/internal/prefix"
	"github.com/paravault/para/internal/testutil"
)

func TestCreateProjectOnEmptyVault(t *testing.T) {
	v := testutil.NewTestVault(t).Build()
	svc := newService(t, v, 0, 1)

	res, err := svc.Create(TypeProject, "My Website", NewOptions{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if res.Prefix != "ab" || !res.GeneratedPrefix {
		t.Errorf("prefix = %q (generated=%v), want generated ab", res.Prefix, res.GeneratedPrefix)
	}
	if res.Path != "1-projects/ab_my-website" {
		t.Errorf("path = %q", res.Path)
	}
	if len(res.Files) != 2 {
		t.Errorf("files = %v, want 2", res.Files)
	}

	v.AssertDirEntries("1-projects/ab_my-website", "ab_my-website.md", "notes")
	v.AssertFileExists("1-projects/ab_my-website/notes/index.md")
	v.AssertFileContains("1-projects/ab_my-website/ab_my-website.md", "# My Website")
	v.AssertFileContains("1-projects/ab_my-website/ab_my-website.md", "created: 2026-01-05")
	for _, f := range res.Files {
		v.AssertFileNotContains(f, "{{")
	}
}

func TestCreateProjectPrefixUniqueAcrossPools(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithDir("1-projects/ab_existing").
		WithDir("2-areas/ac_health").
		Build()
	// Samples ab (project), ac (area), then ad.
	svc := newService(t, v, 0, 1, 0, 2, 0, 3)

	res, err := svc.Create(TypeArea, "Finances", NewOptions{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Prefix != "ad" {
		t.Fatalf("prefix = %q, want ad", res.Prefix)
	}
	v.AssertDirExists("2-areas/ad_finances")
}

func TestCreateGeneratedPrefixesNeverCollide(t *testing.T) {
	v := testutil.NewTestVault(t).Build()
	svc := New(v.Config(), WithClock(func() time.Time { return fixedNow }))

	seen := map[string]bool{}
	for i := 0; i < 40; i++ {
		typ := TypeProject
		if i%2 == 1 {
			typ = TypeArea
		}
		res, err := svc.Create(typ, "entity", NewOptions{})
		if err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
		if seen[res.Prefix] {
			t.Fatalf("prefix %q generated twice", res.Prefix)
		}
		seen[res.Prefix] = true
	}
}

func TestCreateExplicitPrefix(t *testing.T) {
	v := testutil.NewTestVault(t).WithDir("2-areas/ab_taken").Build()
	svc := newService(t, v)

	res, err := svc.Create(TypeProject, "Site", NewOptions{Prefix: "zz"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.GeneratedPrefix || res.Path != "1-projects/zz_site" {
		t.Errorf("got %+v", res)
	}

	if _, err := svc.Create(TypeProject, "Other", NewOptions{Prefix: "ab"}); !errors.Is(err, ErrExists) {
		t.Errorf("prefix in use: err = %v, want ErrExists", err)
	}
	if _, err := svc.Create(TypeProject, "Other", NewOptions{Prefix: "ABC"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("malformed prefix: err = %v, want ErrInvalid", err)
	}
}

func TestCreateResourceTwiceFails(t *testing.T) {
	v := testutil.NewTestVault(t).Build()
	svc := newService(t, v)

	if _, err := svc.Create(TypeResource, "X", NewOptions{Content: "first"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	before := v.ReadFile("3-resources/x.md")

	_, err := svc.Create(TypeResource, "X", NewOptions{Content: "second"})
	if !errors.Is(err, ErrExists) {
		t.Fatalf("second Create: err = %v, want ErrExists", err)
	}
	if after := v.ReadFile("3-resources/x.md"); after != before {
		t.Errorf("content changed:\n%s\nwant:\n%s", after, before)
	}
}

func TestCreateResourceMergesIntoExistingFolder(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("3-resources/rx_rust/rust.md", "# Rust\n").
		Build()
	svc := newService(t, v)

	res, err := svc.Create(TypeResource, "Ownership", NewOptions{Prefix: "rx"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !res.Merged || res.Path != "3-resources/rx_rust/ownership.md" {
		t.Fatalf("got %+v", res)
	}
	v.AssertFileContains("3-resources/rx_rust/ownership.md", "# Ownership")
	v.AssertDirEntries("3-resources", "rx_rust")
}

func TestCreateResourceFolderVariant(t *testing.T) {
	v := testutil.NewTestVault(t).Build()
	svc := newService(t, v)

	res, err := svc.Create(TypeResource, "Go Notes", NewOptions{Prefix: "gn"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Template != TemplateResourceFolder || res.Merged {
		t.Errorf("got %+v", res)
	}
	v.AssertFileContains("3-resources/gn_go-notes/go-notes.md", "# Go Notes")
}

func TestCreatePost(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithDir("2-areas/wr_writing").
		WithFile("2-areas/wr_writing/posts/active/abc_old.md", "old\n").
		Build()
	// abc is taken, so the second sample abd wins.
	svc := newService(t, v, 0, 1, 2, 0, 1, 3)

	res, err := svc.Create(TypePost, "First Post", NewOptions{Area: "wr"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := "2-areas/wr_writing/posts/backlog/abd_first-post.md"
	if res.Path != want || res.ItemCode != "abd" {
		t.Fatalf("got %+v, want path %s", res, want)
	}
	v.AssertFileContains(want, `area: "[[wr_writing]]"`)
	v.AssertFileContains(want, "- status/backlog")
}

func TestCreatePostErrors(t *testing.T) {
	v := testutil.NewTestVault(t).WithDir("1-projects/wr_not-an-area").Build()
	svc := newService(t, v)

	if _, err := svc.Create(TypePost, "Post", NewOptions{}); !errors.Is(err, ErrInvalid) {
		t.Errorf("no area: err = %v, want ErrInvalid", err)
	}
	if _, err := svc.Create(TypePost, "Post", NewOptions{Area: "wr"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("area only under projects: err = %v, want ErrNotFound", err)
	}
}

func TestCreateWork(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithDir("2-areas/ho_home").
		WithFile("2-areas/ho_home/work/review/ab_fence.md", "fence\n").
		Build()
	svc := newService(t, v, 0, 1, 0, 2)

	res, err := svc.Create(TypeWork, "Fix Roof", NewOptions{Prefix: "ho", Deps: "gutters, , [[ladder|Ladder, tall]], gutters"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := "2-areas/ho_home/work/backlog/ac_fix-roof.md"
	if res.Path != want {
		t.Fatalf("path = %q, want %q", res.Path, want)
	}

	content := v.ReadFile(want)
	for _, s := range []string{
		"status: Backlog",
		`parent: "[[ho_home]]"`,
		"type: task",
		"- status/backlog",
		"- [[gutters]]\n- [[ladder|Ladder, tall]]",
	} {
		if !strings.Contains(content, s) {
			t.Errorf("content missing %q:\n%s", s, content)
		}
	}
}

func TestCreateWorkPrefersProjects(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithDir("1-projects/ab_site").
		WithDir("2-areas/ab_shadow").
		Build()
	svc := newService(t, v, 3, 4)

	res, err := svc.Create(TypeWork, "Task", NewOptions{Prefix: "ab", Tag: "bug"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(res.Path, "1-projects/ab_site/work/backlog/de_") {
		t.Fatalf("path = %q", res.Path)
	}
	v.AssertFileContains(res.Path, "type: bug")
}

func TestCreateWorkErrors(t *testing.T) {
	v := testutil.NewTestVault(t).Build()
	svc := newService(t, v)

	if _, err := svc.Create(TypeWork, "Task", NewOptions{}); !errors.Is(err, ErrInvalid) {
		t.Errorf("no prefix: err = %v, want ErrInvalid", err)
	}
	if _, err := svc.Create(TypeWork, "Task", NewOptions{Prefix: "zz"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown parent: err = %v, want ErrNotFound", err)
	}
}

func TestCreateItemCodesExhausted(t *testing.T) {
	b := testutil.NewTestVault(t).WithDir("1-projects/ab_big")
	for _, a := range "abcdefghijklmnopqrstuvwxyz" {
		for _, c := range "abcdefghijklmnopqrstuvwxyz" {
			b.WithFile("1-projects/ab_big/work/backlog/"+string(a)+string(c)+"_t.md", "")
		}
	}
	v := b.Build()
	svc := newService(t, v)

	_, err := svc.Create(TypeWork, "One More", NewOptions{Prefix: "ab"})
	if !errors.Is(err, prefix.ErrExhausted) {
		t.Fatalf("err = %v, want ErrExhausted", err)
	}
}

func TestCreateVariants(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		title    string
		opts     NewOptions
		template string
		path     string
		contains string
	}{
		{"interview episode", TypeEpisode, "Talk", NewOptions{}, TypeEpisode, "3-resources/podcast/2026-01-05-talk.md", "# Interview: Talk"},
		{"solo episode", TypeEpisode, "Talk", NewOptions{Solo: true}, TemplateEpisodeSolo, "3-resources/podcast/2026-01-05-talk-solo.md", "# Solo: Talk"},
		{"scratch in inbox", TypeScratch, "Idea", NewOptions{Content: "hello"}, TypeScratch, "0-inbox/scratch/idea.md", "hello"},
		{"scratch at root", TypeScratch, "Idea", NewOptions{AtRoot: true}, TemplateScratchRoot, "idea.md", ""},
		{"default title", TypeResource, "", NewOptions{}, TypeResource, "3-resources/untitled.md", "# Untitled"},
		{"punctuation-only title", TypeResource, "!!!", NewOptions{}, TypeResource, "3-resources/untitled.md", "# !!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testutil.NewTestVault(t).Build()
			svc := newService(t, v)

			res, err := svc.Create(tt.typ, tt.title, tt.opts)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if res.Template != tt.template || res.Path != tt.path {
				t.Errorf("got template %q path %q, want %q %q", res.Template, res.Path, tt.template, tt.path)
			}
			v.AssertFileExists(tt.path)
			if tt.contains != "" {
				v.AssertFileContains(tt.path, tt.contains)
			}
			v.AssertFileNotContains(tt.path, "{{cursor}}")
		})
	}
}

func TestCreateUnknownType(t *testing.T) {
	v := testutil.NewTestVault(t).Build()
	svc := newService(t, v)

	_, err := svc.Create("journal", "Today", NewOptions{})
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}
	if !strings.Contains(err.Error(), "project") {
		t.Errorf("error should list available templates: %v", err)
	}
}

func TestCreateExplicitPrefixKeepsExistingFolder(t *testing.T) {
	v := testutil.NewTestVault(t).WithFile("1-projects/zz_site/keep.md", "mine\n").Build()
	svc := newService(t, v)

	if _, err := svc.Create(TypeProject, "Site", NewOptions{Prefix: "zz"}); !errors.Is(err, ErrExists) {
		t.Fatalf("err = %v, want ErrExists", err)
	}
	v.AssertDirEntries("1-projects/zz_site", "keep.md")
}

func TestTemplateName(t *testing.T) {
	tests := []struct {
		typ  string
		opts NewOptions
		want string
	}{
		{TypeEpisode, NewOptions{}, TypeEpisode},
		{TypeEpisode, NewOptions{Solo: true}, TemplateEpisodeSolo},
		{TypeScratch, NewOptions{AtRoot: true}, TemplateScratchRoot},
		{TypeResource, NewOptions{Prefix: "ab"}, TemplateResourceFolder},
		{TypeProject, NewOptions{Solo: true, AtRoot: true}, TypeProject},
	}
	for _, tt := range tests {
		if got := TemplateName(tt.typ, tt.opts); got != tt.want {
			t.Errorf("TemplateName(%q, %+v) = %q, want %q", tt.typ, tt.opts, got, tt.want)
		}
	}
}
