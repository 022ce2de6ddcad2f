//go:build integration

package cli_test

import (
	"path"
	"strings"
	"testing"

	"github.com/paravault/para/internal/testutil"
)

// TestIntegration_ProjectLifecycle creates a project and a work item, moves
// the item through to done, then archives the project.
func TestIntegration_ProjectLifecycle(t *testing.T) {
	v := testutil.NewTestVault(t).Build()

	v.WriteFile("AGENTS.md", "# House rules\n")
	v.RunCLI("init").MustSucceed(t)
	v.AssertDirExists("journal/weekly")
	v.AssertFileContains("AGENTS.md", "# House rules\n\n<!-- para:begin -->")

	result := v.RunCLI("new", "project", "My Website")
	result.MustSucceed(t)
	prefix := result.DataString("prefix")
	if len(prefix) != 2 {
		t.Fatalf("expected a two-letter prefix, got %q", prefix)
	}
	name := prefix + "_my-website"
	v.AssertFileExists("1-projects/" + name + "/" + name + ".md")

	result = v.RunCLI("new", "work", "Write Copy", "--prefix", prefix, "--deps", "ab_brief")
	result.MustSucceed(t)
	code := result.DataString("item_code")
	itemPath := result.DataString("path")
	if itemPath != "1-projects/"+name+"/work/backlog/"+code+"_write-copy.md" {
		t.Fatalf("unexpected work path %q", itemPath)
	}
	v.AssertFileContains(itemPath, "- [[ab_brief]]")

	v.RunCLI("mark", "work", "--prefix", prefix, "--item", code, "--status", "active").MustSucceed(t)
	active := "1-projects/" + name + "/work/active/" + code + "_write-copy.md"
	v.AssertFileContains(active, "status: Active")
	v.AssertFileContains(active, "- status/active")

	result = v.RunCLI("mark", "work", "--prefix", prefix, "--item", code, "--status", "done")
	result.MustSucceed(t)
	done := "1-projects/" + name + "/work/done/write-copy.md"
	if got := result.DataString("to"); got != done {
		t.Errorf("expected to=%s, got %s", done, got)
	}
	v.AssertFileNotContains(done, "status/")
	v.AssertFileNotExists(active)

	v.RunCLI("list", "work", "--prefix", prefix).MustSucceed(t).AssertResultCount(t, "items", 1)

	v.RunCLI("archive", "project", name).MustSucceed(t)
	v.AssertFileNotExists("1-projects/" + name)
	v.AssertFileExists("4-archive/projects/" + name + "/work/done/write-copy.md")
}

func TestIntegration_PostLifecycle(t *testing.T) {
	v := testutil.NewTestVault(t).WithDir("2-areas/wr_writing").Build()

	result := v.RunCLI("new", "post", "Hello World", "--area", "wr")
	result.MustSucceed(t)
	code := result.DataString("item_code")
	if len(code) != 3 {
		t.Fatalf("expected a three-letter post code, got %q", code)
	}

	v.RunCLI("mark", "post", "--prefix", "wr", "--item", code, "--status", "active").MustSucceed(t)
	active := "2-areas/wr_writing/posts/active/" + code + "_hello-world.md"
	v.AssertFileContains(active, "- status/active")
	v.AssertDirEntries("2-areas/wr_writing/posts/backlog")
}

func TestIntegration_DuplicateResourceExitsNonZero(t *testing.T) {
	v := testutil.NewTestVault(t).Build()

	v.RunCLI("new", "resource", "X", "--content", "original").MustSucceed(t)

	result := v.RunCLI("new", "resource", "X", "--content", "other")
	result.MustFailWithMessage(t, "already exists")
	result.AssertErrorCode(t, "FILE_EXISTS")
	result.AssertExitCode(t, 1)
	v.AssertFileContains("3-resources/x.md", "original")

	text := v.RunText("new", "resource", "X")
	if text.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d", text.ExitCode)
	}
	if !strings.HasPrefix(text.Stderr, "Error: ") {
		t.Errorf("expected plain error on stderr, got %q", text.Stderr)
	}
}

func TestIntegration_TextConfirmations(t *testing.T) {
	v := testutil.NewTestVault(t).WithDir("2-areas/ho_home").Build()

	text := v.RunText("new", "scratch", "Idea", "--at-root")
	if text.ExitCode != 0 || !strings.HasPrefix(text.Stdout, "✓ Created scratch idea.md") {
		t.Errorf("unexpected output: %q (stderr %q)", text.Stdout, text.Stderr)
	}
	v.AssertFileExists("idea.md")

	text = v.RunText("archive", "area", "ho")
	if text.ExitCode != 0 || !strings.Contains(text.Stdout, path.Join("4-archive/areas", "ho_home")) {
		t.Errorf("unexpected output: %q (stderr %q)", text.Stdout, text.Stderr)
	}
}

func TestIntegration_MissingConfig(t *testing.T) {
	v := testutil.NewTestVault(t).Build()

	result := v.RunCLI("--config", v.Path+"/missing.yaml", "init")
	result.MustFail(t, "CONFIG_NOT_FOUND")
	result.AssertExitCode(t, 1)
	if v.FileExists("1-projects") || v.FileExists("AGENTS.md") {
		t.Error("init must not touch the vault without a config")
	}
}
