package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/jsonfind/internal/types"
)

func setupWorkspaceDir(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestFindCommand(t *testing.T) {
	root := setupWorkspaceDir(t, map[string]string{
		"a.json":              "{\n  \"a\": {\n    \"b\": 1\n  }\n}\n",
		"sub/b.json":          `[{"a": {"b": "two"}}]`,
		"dist/bundle.json":    `{"a": {"b": 3}}`,
		"notes/readme.md":     "a.b",
		"node_modules/x.json": `{"a": {"b": 4}}`,
	})

	t.Run("prints matches", func(t *testing.T) {
		stdout, _, err := execute(t, "find", "a.b", root)
		if err != nil {
			t.Fatalf("find error = %v", err)
		}

		want := "a.json:3:5  a.b = 1\ndist/bundle.json:1:8  a.b = 3\nsub/b.json:1:9  a.b = two\n"
		if stdout != want {
			t.Errorf("stdout = %q, want %q", stdout, want)
		}
	})

	t.Run("exclude flag", func(t *testing.T) {
		stdout, _, err := execute(t, "find", "a.b", root, "--exclude", "dist/**")
		if err != nil {
			t.Fatalf("find error = %v", err)
		}
		if strings.Contains(stdout, "dist/") {
			t.Errorf("stdout = %q, want dist excluded", stdout)
		}
	})

	t.Run("settings file", func(t *testing.T) {
		configured := setupWorkspaceDir(t, map[string]string{
			".jsonfind.yml": "exclude: [\"skip/**\"]\n",
			"keep.json":     `{"k": 1}`,
			"skip/s.json":   `{"k": 2}`,
		})

		stdout, _, err := execute(t, "find", "k", configured)
		if err != nil {
			t.Fatalf("find error = %v", err)
		}
		if stdout != "keep.json:1:2  k = 1\n" {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("limit reports remaining", func(t *testing.T) {
		stdout, stderr, err := execute(t, "find", "a.b", root, "--limit", "1")
		if err != nil {
			t.Fatalf("find error = %v", err)
		}
		if strings.Count(stdout, "\n") != 1 {
			t.Errorf("stdout = %q, want one line", stdout)
		}
		if !strings.Contains(stderr, "2 more results") {
			t.Errorf("stderr = %q, want remaining count", stderr)
		}
	})

	t.Run("json output", func(t *testing.T) {
		stdout, _, err := execute(t, "find", "a.b", root, "--file", "a.json", "--json")
		if err != nil {
			t.Fatalf("find error = %v", err)
		}

		var result types.FindResult
		if err := json.Unmarshal([]byte(stdout), &result); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, stdout)
		}
		if result.Total != 1 || result.Matches[0].Line != 3 {
			t.Errorf("result = %+v, want one match on line 3", result)
		}
		if result.Matches[0].Value == nil || *result.Matches[0].Value != "1" {
			t.Errorf("Value = %v, want 1", result.Matches[0].Value)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, _, err := execute(t, "find", " ", root); err == nil {
			t.Error("find error = nil, want empty query error")
		}
	})
}

func TestConfigInitCommand(t *testing.T) {
	root := t.TempDir()

	stdout, _, err := execute(t, "config", "init", root)
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(stdout, ".jsonfind.yml") {
		t.Errorf("stdout = %q, want written path", stdout)
	}

	data, err := os.ReadFile(filepath.Join(root, ".jsonfind.yml"))
	if err != nil {
		t.Fatalf("settings file not written: %v", err)
	}
	if !strings.Contains(string(data), "limit: 50") {
		t.Errorf("settings = %q, want default limit", data)
	}

	if _, _, err := execute(t, "config", "init", root); err == nil {
		t.Error("second config init error = nil, want already exists")
	}

	if _, _, err := execute(t, "config", "init", root, "--force"); err != nil {
		t.Errorf("config init --force error = %v", err)
	}
}
