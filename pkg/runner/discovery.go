package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Discover resolves opts.Paths into the formula files to check.
//
// Files named explicitly are taken as given, whatever their extension.
// Directories are walked for files with a configured extension, skipping
// hidden entries and anything matching opts.ExcludeGlobs. The result is a
// sorted, de-duplicated list of absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		exclude:    opts.ExcludeGlobs,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			d.add(abs)
			continue
		}

		if err := d.walk(ctx, abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

type discoverer struct {
	workDir    string
	extensions []string
	exclude    []string
	follow     bool

	seen  map[string]struct{}
	files []string
}

func (d *discoverer) add(file string) {
	if _, ok := d.seen[file]; ok {
		return
	}
	d.seen[file] = struct{}{}
	d.files = append(d.files, file)
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || d.excluded(p) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || d.excluded(p) {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.symlink(ctx, p)
		}

		if d.hasExtension(p) {
			d.add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a symlink met during a walk. Broken links are skipped;
// directory links are walked only when following is enabled.
func (d *discoverer) symlink(ctx context.Context, p string) error {
	target, err := filepath.EvalSymlinks(p)
	if err != nil {
		return nil //nolint:nilerr // broken symlinks are skipped
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable targets are skipped
	}

	if info.IsDir() {
		if !d.follow {
			return nil
		}
		return d.walk(ctx, target)
	}

	if d.hasExtension(p) {
		d.add(p)
	}
	return nil
}

func (d *discoverer) hasExtension(p string) bool {
	ext := filepath.Ext(p)
	for _, want := range d.extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

func (d *discoverer) excluded(p string) bool {
	rel, err := filepath.Rel(d.workDir, p)
	if err != nil {
		rel = p
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range d.exclude {
		if matchGlob(filepath.ToSlash(pattern), rel) {
			return true
		}
	}
	return false
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

// matchGlob reports whether the slash-separated rel path matches pattern.
// Segments are matched with path.Match; a "**" segment matches zero or more
// segments. A pattern without a slash is also tried against the base name,
// so "*.tmp.fx" excludes such files at any depth.
func matchGlob(pattern, rel string) bool {
	pattern = strings.TrimPrefix(pattern, "./")
	pattern = strings.TrimSuffix(pattern, "/")
	if pattern == "" {
		return false
	}

	if !strings.Contains(pattern, "/") && pattern != "**" {
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}

	return matchSegments(strings.Split(pattern, "/"), strings.Split(rel, "/"))
}

func matchSegments(pattern, parts []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(parts); i++ {
				if matchSegments(rest, parts[i:]) {
					return true
				}
			}
			return false
		}

		if len(parts) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], parts[0]); err != nil || !ok {
			return false
		}
		pattern, parts = pattern[1:], parts[1:]
	}
	return len(parts) == 0
}
