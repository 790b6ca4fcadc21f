package main

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ytget/img2png/internal/model"
)

func TestReadURLs(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "urls.txt")
	list := "https://x.test/1.png\n\n# skip me\n  https://x.test/2.webp  \n"
	if err := os.WriteFile(listPath, []byte(list), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		file     string
		stdin    string
		expected []string
	}{
		{"args only", []string{" https://x.test/a.png ", ""}, "", "", []string{"https://x.test/a.png"}},
		{"file", nil, listPath, "", []string{"https://x.test/1.png", "https://x.test/2.webp"}},
		{"args then stdin", []string{"https://x.test/a.png"}, "-", "https://x.test/b.gif\r\n", []string{"https://x.test/a.png", "https://x.test/b.gif"}},
		{"duplicates kept", []string{"https://x.test/a.png", "https://x.test/a.png"}, "", "", []string{"https://x.test/a.png", "https://x.test/a.png"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := readURLs(test.args, test.file, strings.NewReader(test.stdin))
			if err != nil {
				t.Fatalf("readURLs failed: %v", err)
			}
			if !reflect.DeepEqual(got, test.expected) {
				t.Errorf("readURLs = %v, expected %v", got, test.expected)
			}
		})
	}

	if _, err := readURLs(nil, filepath.Join(dir, "missing.txt"), nil); err == nil {
		t.Error("Expected error for missing URL file")
	}
}

func TestCLIReporter(t *testing.T) {
	var out bytes.Buffer
	r := &cliReporter{out: &out}

	r.OnStatus("Saving to: /tmp/x")
	r.OnProgress(1, 2, "https://x.test/a.png")
	r.OnItemDone(model.ItemOutcome{URL: "https://x.test/a.png", Err: model.NewItemError(model.FailureNetwork, "https://x.test/a.png", errors.New("boom"))})
	r.OnCompletion(true, "Finished. 1/2 converted.", []string{"Network error for https://x.test/a.png...: boom"})

	expected := "Saving to: /tmp/x\n" +
		"Processing [1/2]: https://x.test/a.png...\n" +
		"Finished. 1/2 converted.\n" +
		"Encountered 1 error(s):\n" +
		"  - Network error for https://x.test/a.png...: boom\n"
	if out.String() != expected {
		t.Errorf("Unexpected output:\n%s\nexpected:\n%s", out.String(), expected)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out.String() != "img2png vdev\n" {
		t.Errorf("Unexpected version output %q", out.String())
	}
}

func TestRootCommand_ConvertsAndSignalsFailure(t *testing.T) {
	var payload bytes.Buffer
	if err := png.Encode(&payload, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(payload.Bytes())
	}))
	defer srv.Close()

	outDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "absent.toml")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"--config", cfgPath, "--dir", outDir, srv.URL + "/pic.png"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Expected success, got %v\n%s", err, errOut.String())
	}
	if _, err := os.Stat(filepath.Join(outDir, "pic.png")); err != nil {
		t.Errorf("Expected pic.png: %v", err)
	}
	if !strings.Contains(out.String(), "Finished. 1/1 converted.") {
		t.Errorf("Missing summary in output:\n%s", out.String())
	}

	out.Reset()
	rootCmd.SetArgs([]string{"--config", cfgPath, "--dir", outDir, srv.URL + "/missing.png"})
	if err := rootCmd.Execute(); !errors.Is(err, errUnsuccessful) {
		t.Errorf("Expected errUnsuccessful, got %v", err)
	}
	if !strings.Contains(out.String(), "Finished. 0/1 converted.") {
		t.Errorf("Missing summary in output:\n%s", out.String())
	}
}

func TestRootCommand_URLArgumentIsNotSubcommand(t *testing.T) {
	cmd, rest, err := rootCmd.Find([]string{"https://x.test/cat.webp", "--dir", "/tmp"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if cmd != rootCmd {
		t.Errorf("Expected root command, got %q", cmd.Name())
	}
	if len(rest) == 0 || rest[0] != "https://x.test/cat.webp" {
		t.Errorf("Expected URL to stay an argument, got %v", rest)
	}
}
