package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pystrfmt/internal/format"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fmtOpts() format.Options {
	return format.Options{Quotes: format.QuoteDouble, Target: format.Py312}
}

func TestFormatPathsRewritesInPlace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "x = 'hi'\n")

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Options: fmtOpts()})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("results = %+v", results)
	}
	if !results[0].Changed {
		t.Fatal("expected a change")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x = \"hi\"\n" {
		t.Fatalf("file content = %q", data)
	}
}

func TestFormatPathsCheckLeavesFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "x = 'hi'\n")

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{Check: true, Options: fmtOpts()})
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].Changed {
		t.Fatal("check should report the pending change")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "x = 'hi'\n" {
		t.Fatalf("check modified the file: %q", data)
	}
}

func TestFormatPathsStdout(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "x = 'hi'\n")

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{Stdout: true, Options: fmtOpts()})
	if err != nil {
		t.Fatal(err)
	}
	if string(results[0].Formatted) != "x = \"hi\"\n" {
		t.Fatalf("stdout content = %q", results[0].Formatted)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "x = 'hi'\n" {
		t.Fatalf("stdout mode modified the file: %q", data)
	}
}

func TestFormatPathsStdoutCheckConflict(t *testing.T) {
	if _, err := FormatPaths(context.Background(), []string{"."}, FormatOptions{Check: true, Stdout: true}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestCollectPythonFilesSkipsJunkDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pkg/a.py", "x = 1\n")
	writeFile(t, dir, "pkg/b.pyi", "x: int\n")
	writeFile(t, dir, "pkg/__pycache__/a.cpython-312.py", "x = 1\n")
	writeFile(t, dir, ".venv/lib/c.py", "x = 1\n")
	writeFile(t, dir, "notes.txt", "hello\n")

	files, err := collectPythonFiles(context.Background(), []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v", files)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	key := CacheKey([]byte("x = 'hi'\n"), fmtOpts())
	want := &CachePayload{Schema: cacheSchemaVersion, Formatted: []byte("x = \"hi\"\n"), Changed: true}
	if err := cache.Put(key, want); err != nil {
		t.Fatal(err)
	}

	var got CachePayload
	hit, err := cache.Get(key, &got)
	if err != nil || !hit {
		t.Fatalf("hit=%v err=%v", hit, err)
	}
	if string(got.Formatted) != string(want.Formatted) || got.Changed != want.Changed {
		t.Fatalf("got %+v", got)
	}

	// A different content or option set misses.
	var miss CachePayload
	if hit, _ := cache.Get(CacheKey([]byte("x = 'other'\n"), fmtOpts()), &miss); hit {
		t.Fatal("unexpected hit for different content")
	}
	other := fmtOpts()
	other.Quotes = format.QuoteSingle
	if hit, _ := cache.Get(CacheKey([]byte("x = 'hi'\n"), other), &miss); hit {
		t.Fatal("unexpected hit for different options")
	}
}

func TestFormatPathsUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 'hi'\n")
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	opts := FormatOptions{Options: fmtOpts(), Cache: cache}
	if _, err := FormatPaths(context.Background(), []string{dir}, opts); err != nil {
		t.Fatal(err)
	}

	// A second run over the already formatted tree is a no-op and
	// seeds the cache for later runs.
	results, err := FormatPaths(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Changed {
		t.Fatal("second run should be a no-op")
	}
}

func TestFormatPathsEmitsEvents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 'hi'\n")

	events := make(chan Event, 16)
	_, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Options: fmtOpts(), Events: events})
	if err != nil {
		t.Fatal(err)
	}
	close(events)

	var statuses []Status
	for ev := range events {
		statuses = append(statuses, ev.Status)
	}
	want := []Status{StatusQueued, StatusWorking, StatusDone}
	if len(statuses) != len(want) {
		t.Fatalf("statuses = %v", statuses)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Fatalf("statuses = %v, want %v", statuses, want)
		}
	}
}

func TestTokenizeFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "x = 'hi'  # c\n")

	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %v", res.Bag.Items())
	}
	if len(res.Tokens) == 0 {
		t.Fatal("no tokens")
	}
}
