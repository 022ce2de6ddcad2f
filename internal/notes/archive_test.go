package notes

import (
	"errors"
	"testing"

	"github.com/paravault/para/internal/testutil"
	"github.com/paravault/para/internal/vault"
)

func TestArchiveProjectMovesFolder(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("1-projects/ab_site/ab_site.md", "# Site\n").
		WithFile("1-projects/ab_site/notes/deep/n.md", "deep\n").
		Build()
	svc := newService(t, v)

	res, err := svc.Archive(vault.KindProject, "ab_site")
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if res.From != "1-projects/ab_site" || res.To != "4-archive/projects/ab_site" {
		t.Fatalf("got %+v", res)
	}

	v.AssertFileNotExists("1-projects/ab_site")
	if got := v.ReadFile("4-archive/projects/ab_site/ab_site.md"); got != "# Site\n" {
		t.Errorf("ab_site.md = %q", got)
	}
	if got := v.ReadFile("4-archive/projects/ab_site/notes/deep/n.md"); got != "deep\n" {
		t.Errorf("n.md = %q", got)
	}
}

func TestArchiveByPrefix(t *testing.T) {
	v := testutil.NewTestVault(t).WithFile("2-areas/wr_writing/x.md", "x").Build()
	svc := newService(t, v)

	res, err := svc.Archive(vault.KindArea, "wr")
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if res.Name != "wr_writing" {
		t.Errorf("name = %q", res.Name)
	}
	v.AssertFileExists("4-archive/areas/wr_writing/x.md")
}

func TestArchiveResourceFile(t *testing.T) {
	v := testutil.NewTestVault(t).WithFile("3-resources/link.md", "url\n").Build()
	svc := newService(t, v)

	if _, err := svc.Archive(vault.KindResource, "link.md"); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	v.AssertFileContains("4-archive/resources/link.md", "url")
	v.AssertFileNotExists("3-resources/link.md")
}

func TestArchiveErrors(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("1-projects/ab_site/a.md", "new\n").
		WithFile("4-archive/projects/ab_site/a.md", "old\n").
		Build()
	svc := newService(t, v)

	tests := []struct {
		name string
		kind vault.Kind
		arg  string
		want error
	}{
		{"missing source", vault.KindProject, "zz_gone", ErrNotFound},
		{"missing prefix", vault.KindProject, "zz", ErrNotFound},
		{"destination exists", vault.KindProject, "ab_site", ErrExists},
		{"path traversal", vault.KindProject, "../2-areas", ErrInvalid},
		{"nested path", vault.KindProject, "ab_site/a.md", ErrInvalid},
		{"empty", vault.KindProject, "", ErrInvalid},
		{"bad kind", vault.Kind("inbox"), "ab_site", ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Archive(tt.kind, tt.arg); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	v.AssertFileContains("1-projects/ab_site/a.md", "new")
	v.AssertFileContains("4-archive/projects/ab_site/a.md", "old")
}
