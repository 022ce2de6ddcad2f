package notes

import (
	"errors"
	"reflect"
	"testing"

	"github.com/paravault/para/internal/testutil"
)

func TestList(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithDir("1-projects/ab_site").
		WithDir("1-projects/cd_book").
		WithFile("1-projects/ab_site/work/backlog/xy_copy.md", "").
		WithFile("1-projects/ab_site/work/done/launch.md", "").
		WithDir("2-areas/wr_writing").
		WithFile("2-areas/wr_writing/posts/review/abc_hello.md", "").
		WithFile("3-resources/link.md", "").
		WithDir("4-archive/areas/ol_old").
		WithFile("1-projects/.hidden", "").
		Build()
	svc := newService(t, v)

	tests := []struct {
		kind   string
		parent string
		want   []Row
	}{
		{ListProjects, "", []Row{
			{Prefix: "ab", Name: "site", Location: "project", Path: "1-projects/ab_site"},
			{Prefix: "cd", Name: "book", Location: "project", Path: "1-projects/cd_book"},
		}},
		{ListResources, "", []Row{
			{Name: "link.md", Location: "resource", Path: "3-resources/link.md"},
		}},
		{ListArchive, "", []Row{
			{Prefix: "ol", Name: "old", Location: "area", Path: "4-archive/areas/ol_old"},
		}},
		{ListWork, "ab", []Row{
			{Prefix: "xy", Name: "copy.md", Location: "backlog", Path: "1-projects/ab_site/work/backlog/xy_copy.md"},
			{Name: "launch.md", Location: "done", Path: "1-projects/ab_site/work/done/launch.md"},
		}},
		{ListPosts, "wr", []Row{
			{Prefix: "abc", Name: "hello.md", Location: "review", Path: "2-areas/wr_writing/posts/review/abc_hello.md"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got, err := svc.List(tt.kind, tt.parent)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("List(%q) =\n%+v\nwant\n%+v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestListErrors(t *testing.T) {
	v := testutil.NewTestVault(t).Build()
	svc := newService(t, v)

	if _, err := svc.List("journals", ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("unknown kind: err = %v, want ErrInvalid", err)
	}
	if _, err := svc.List(ListWork, ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("work without parent: err = %v, want ErrInvalid", err)
	}
	if _, err := svc.List(ListPosts, "zz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("posts of unknown area: err = %v, want ErrNotFound", err)
	}
	rows, err := svc.List(ListAreas, "")
	if err != nil || len(rows) != 0 {
		t.Errorf("areas on empty vault = %v, %v", rows, err)
	}
}
