// Package integration provides integration tests for refconv commands.
package integration

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	refconvBinary     string
	refconvBinaryOnce sync.Once
	refconvBinaryErr  error
)

// getRefconvBinary builds the refconv binary once and returns its path.
func getRefconvBinary(t *testing.T) string {
	t.Helper()
	refconvBinaryOnce.Do(func() {
		_, filename, _, ok := runtime.Caller(0)
		if !ok {
			refconvBinaryErr = os.ErrInvalid
			return
		}
		moduleRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))

		tmpDir, err := os.MkdirTemp("", "refconv-test-*")
		if err != nil {
			refconvBinaryErr = err
			return
		}
		refconvBinary = filepath.Join(tmpDir, "refconv")

		cmd := exec.Command("go", "build", "-o", refconvBinary, "./cmd/refconv")
		cmd.Dir = moduleRoot
		if output, err := cmd.CombinedOutput(); err != nil {
			refconvBinaryErr = &buildError{output: string(output), err: err}
			return
		}
	})
	if refconvBinaryErr != nil {
		t.Fatalf("failed to build refconv: %v", refconvBinaryErr)
	}
	return refconvBinary
}

type buildError struct {
	output string
	err    error
}

func (e *buildError) Error() string {
	return e.err.Error() + ": " + e.output
}

// runRefconv executes refconv with args, stdin wired to input, and the
// config and library isolated under a per-test directory.
func runRefconv(t *testing.T, workDir, input string, args ...string) (string, error) {
	t.Helper()
	bin := getRefconvBinary(t)
	cmd := exec.Command(bin, args...)
	cmd.Dir = workDir
	cmd.Stdin = strings.NewReader(input)
	cmd.Env = append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(workDir, "config"),
		"REFCONV_LIBRARY="+filepath.Join(workDir, "library.db"),
	)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

const sampleBibTeX = `@article{smith2024,
  title = {Gene Expression Atlas},
  author = {Smith, John and Doe, Jane},
  journal = {Nature},
  year = {2024},
  pages = {100--110},
}
`

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runRefconv(t, dir, sampleBibTeX, "convert", "--to", "ris", "-")
	if err != nil {
		t.Fatalf("convert failed: %v\n%s", err, out)
	}

	var resp struct {
		From   string `json:"from"`
		To     string `json:"to"`
		Output string `json:"output"`
		Result struct {
			Stats struct {
				Successful int `json:"successful"`
			} `json:"stats"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, out)
	}
	if resp.From != "bibtex" || resp.To != "ris" {
		t.Errorf("from/to = %s/%s, want bibtex/ris", resp.From, resp.To)
	}
	if !strings.Contains(resp.Output, "TY  - JOUR") {
		t.Errorf("output = %q, want RIS record", resp.Output)
	}
	if resp.Result.Stats.Successful != 1 {
		t.Errorf("successful = %d, want 1", resp.Result.Stats.Successful)
	}
}

func TestConvertHumanOutput(t *testing.T) {
	dir := t.TempDir()

	out, err := runRefconv(t, dir, sampleBibTeX, "--human", "convert", "--to", "ris", "-")
	if err != nil {
		t.Fatalf("convert failed: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "TY  - JOUR") {
		t.Errorf("output = %q, want bare RIS text", out)
	}
}

func TestDetectCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runRefconv(t, dir, sampleBibTeX, "detect", "-")
	if err != nil {
		t.Fatalf("detect failed: %v\n%s", err, out)
	}

	var resp struct {
		Format   string `json:"format"`
		Detected bool   `json:"detected"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, out)
	}
	if !resp.Detected || resp.Format != "bibtex" {
		t.Errorf("detect = %+v, want bibtex", resp)
	}
}

func TestValidateCommandFailsOnBrokenInput(t *testing.T) {
	dir := t.TempDir()

	out, err := runRefconv(t, dir, "@article{broken,\n  title = {Open\n", "validate", "--format", "bibtex", "-")
	if err == nil {
		t.Fatalf("validate succeeded on broken input:\n%s", out)
	}
	if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() != 3 {
		t.Errorf("exit code = %d, want 3", exitErr.ExitCode())
	}
}

func TestLibraryWorkflow(t *testing.T) {
	dir := t.TempDir()

	out, err := runRefconv(t, dir, sampleBibTeX, "library", "import", "-")
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	var importResp struct {
		Imported int `json:"imported"`
	}
	if err := json.Unmarshal([]byte(out), &importResp); err != nil {
		t.Fatalf("import response is not JSON: %v\n%s", err, out)
	}
	if importResp.Imported != 1 {
		t.Errorf("imported = %d, want 1", importResp.Imported)
	}

	out, err = runRefconv(t, dir, "", "library", "list")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, out)
	}
	var entries []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("list response is not JSON: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].ID != "smith2024" {
		t.Errorf("list = %+v, want smith2024", entries)
	}

	out, err = runRefconv(t, dir, "", "library", "export", "--to", "csl-json")
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"id": "smith2024"`) {
		t.Errorf("export = %q, want CSL-JSON with smith2024", out)
	}

	out, err = runRefconv(t, dir, "", "library", "remove", "smith2024")
	if err != nil {
		t.Fatalf("remove failed: %v\n%s", err, out)
	}
	var removeResp struct {
		Removed int `json:"removed"`
	}
	if err := json.Unmarshal([]byte(out), &removeResp); err != nil {
		t.Fatalf("remove response is not JSON: %v\n%s", err, out)
	}
	if removeResp.Removed != 1 {
		t.Errorf("removed = %d, want 1", removeResp.Removed)
	}
}

func TestLibraryMergeDedupesByID(t *testing.T) {
	dir := t.TempDir()

	if out, err := runRefconv(t, dir, sampleBibTeX, "library", "import", "-"); err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}

	out, err := runRefconv(t, dir, sampleBibTeX, "library", "merge", "-")
	if err != nil {
		t.Fatalf("merge failed: %v\n%s", err, out)
	}
	var resp struct {
		Merged  int `json:"merged"`
		Dropped int `json:"dropped"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("merge response is not JSON: %v\n%s", err, out)
	}
	if resp.Merged != 0 || resp.Dropped != 1 {
		t.Errorf("merge = %+v, want 0 merged, 1 dropped", resp)
	}
}
