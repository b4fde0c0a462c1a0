// Package driver runs the formatter over files and directories:
// discovery, parallel execution, result caching, and progress events
// for the terminal UI.
package driver

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"pystrfmt/internal/diag"
	"pystrfmt/internal/format"
	"pystrfmt/internal/source"
)

// FormatOptions configures a formatting run.
type FormatOptions struct {
	// Check leaves files untouched and only reports whether they would
	// change.
	Check bool
	// Stdout returns the formatted content in the results instead of
	// rewriting files.
	Stdout bool
	// MaxDiagnostics caps diagnostics collected per file.
	MaxDiagnostics int
	// Jobs is the number of files formatted concurrently. Zero or
	// negative means GOMAXPROCS.
	Jobs int
	// Options is passed through to the formatter.
	Options format.Options
	// Cache, when non-nil, skips files whose content and options match
	// a previous run.
	Cache *DiskCache
	// Events, when non-nil, receives per-file progress.
	Events chan<- Event
}

// FormatResult captures the outcome for a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
	Bag       *diag.Bag
	// FileSet resolves the spans in Bag. Nil on load errors and cache
	// hits.
	FileSet *source.FileSet
}

// FormatPaths formats the given files and directories (recursively
// collecting .py and .pyi files). Results are ordered by path. A file
// that fails carries its error in the result; FormatPaths itself only
// errors when discovery fails or the context is cancelled.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Stdout && opts.Check {
		return nil, errors.New("driver: stdout and check are mutually exclusive")
	}

	files, err := collectPythonFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("driver: no Python files found")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	if opts.Events != nil {
		for _, path := range files {
			opts.Events <- Event{Path: path, Status: StatusQueued}
		}
	}

	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if opts.Events != nil {
				opts.Events <- Event{Path: path, Status: StatusWorking}
			}
			// Each goroutine owns its index, no mutex needed.
			results[i] = formatOne(path, opts)

			if opts.Events != nil {
				ev := Event{Path: path, Status: StatusDone, Changed: results[i].Changed}
				if results[i].Err != nil {
					ev.Status = StatusError
					ev.Err = results[i].Err
				}
				opts.Events <- ev
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOne(path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}

	// Load handles BOM stripping, the PEP 263 coding cookie, and CRLF
	// normalization; formatting and comparison work on the normalized
	// content.
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	sf := fileSet.Get(id)

	key := CacheKey(sf.Content, opts.Options)
	var cached CachePayload
	if hit, _ := opts.Cache.Get(key, &cached); hit {
		res.Changed = cached.Changed
		if opts.Stdout {
			res.Formatted = cached.Formatted
		}
		if !opts.Check && !opts.Stdout && cached.Changed {
			res.Err = rewrite(path, sf, cached.Formatted)
		}
		return res
	}

	bag := diag.NewBag(maxDiag(opts.MaxDiagnostics))
	formatted := format.FormatFile(sf, opts.Options, &diag.BagReporter{Bag: bag})
	res.Bag = bag
	res.FileSet = fileSet
	res.Changed = !bytes.Equal(sf.Content, formatted)
	if !bag.HasErrors() {
		// Runs with skipped literals are not cached so a later run
		// with a higher diagnostics budget retries them.
		_ = opts.Cache.Put(key, &CachePayload{
			Schema:    cacheSchemaVersion,
			Formatted: formatted,
			Changed:   res.Changed,
		})
	}

	if opts.Check {
		return res
	}
	if opts.Stdout {
		res.Formatted = formatted
		return res
	}
	if res.Changed {
		res.Err = rewrite(path, sf, formatted)
	}
	return res
}

// rewrite writes formatted content back in place. Sources that needed
// transcoding from a non-UTF-8 encoding are not rewritten: the output
// would no longer match the file's coding cookie.
func rewrite(path string, sf *source.File, formatted []byte) error {
	if sf.Flags&source.FileTranscoded != 0 {
		return errors.New("driver: refusing to rewrite non-UTF-8 file " + path + " in place; use stdout mode")
	}
	return writeBack(path, formatted)
}

func writeBack(path string, formatted []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, formatted, mode.Perm())
}

func maxDiag(n int) int {
	if n <= 0 {
		n = 256
	}
	// Bag capacity is uint16; clamp instead of wrapping.
	if _, err := safecast.Conv[uint16](n); err != nil {
		n = 65535
	}
	return n
}

// collectPythonFiles expands paths into a sorted, de-duplicated list
// of Python source files.
func collectPythonFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					// Virtualenvs and VCS metadata are never format
					// targets.
					name := d.Name()
					if name == ".git" || name == ".venv" || name == "__pycache__" {
						return fs.SkipDir
					}
					return nil
				}
				if isPythonFile(path) {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}
		if isPythonFile(p) {
			addFile(p)
		}
	}

	sort.Strings(files)
	return files, nil
}

func isPythonFile(path string) bool {
	return strings.HasSuffix(path, ".py") || strings.HasSuffix(path, ".pyi")
}
