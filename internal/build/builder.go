// internal/build/builder.go
package build

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"golang.org/x/mod/semver"

	"rizz/internal/codegen"
	"rizz/internal/compiler"
)

const (
	ManifestName      = "rizz.json"
	DefaultEntryPoint = "main.rizz"
	DefaultOutputPath = "dist/index.js"
	SourceExt         = ".rizz"
)

// BuildConfig represents the build configuration
type BuildConfig struct {
	OutputPath string `json:"output_path"`
	Indent     int    `json:"indent"`
}

// ProjectManifest represents a Rizz project manifest (rizz.json)
type ProjectManifest struct {
	Name        string      `json:"name"`
	Version     string      `json:"version"`
	Description string      `json:"description,omitempty"`
	EntryPoint  string      `json:"entry_point"`
	BuildConfig BuildConfig `json:"build"`
}

// Options returns the generator options the manifest asks for.
func (c BuildConfig) Options() codegen.Options {
	opts := codegen.DefaultOptions()
	if c.Indent > 0 {
		opts.Indent = strings.Repeat(" ", c.Indent)
	}
	return opts
}

// BuildResult describes one successful compilation.
type BuildResult struct {
	Input      string
	OutputPath string
	Bytes      int
	BuildTime  time.Duration
}

func (r *BuildResult) String() string {
	return fmt.Sprintf("%s -> %s (%s)", r.Input, r.OutputPath, humanize.Bytes(uint64(r.Bytes)))
}

// CompileFile reads input, compiles it and writes the JavaScript to output.
// Nothing is written unless the whole file compiles.
func CompileFile(input, output string, opts codegen.Options) (*BuildResult, error) {
	startTime := time.Now()

	source, err := os.ReadFile(input)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", input)
	}

	js, err := compiler.NewCompiler(opts).Compile(string(source), input)
	if err != nil {
		return nil, err
	}

	if err := WriteFile(output, []byte(js)); err != nil {
		return nil, err
	}

	return &BuildResult{
		Input:      input,
		OutputPath: output,
		Bytes:      len(js),
		BuildTime:  time.Since(startTime),
	}, nil
}

// WriteFile creates the parent directories of path and replaces path with
// data in one step: the bytes go to a temporary file in the same directory
// which is then renamed over path.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "could not create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "could not create temporary output")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "could not write %s", tmp.Name())
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "could not chmod %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "could not close %s", tmp.Name())
	}
	return errors.Wrapf(os.Rename(tmp.Name(), path), "could not write %s", path)
}

// Builder handles the build process for Rizz projects
type Builder struct {
	config      *BuildConfig
	projectRoot string
	manifest    *ProjectManifest
	out         io.Writer
}

// NewBuilder creates a new builder instance
func NewBuilder(projectRoot string) (*Builder, error) {
	manifest, err := LoadManifest(projectRoot)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load manifest")
	}

	return &Builder{
		projectRoot: projectRoot,
		manifest:    manifest,
		config:      &manifest.BuildConfig,
		out:         os.Stdout,
	}, nil
}

// SetOutput redirects progress messages.
func (b *Builder) SetOutput(w io.Writer) {
	b.out = w
}

// Manifest returns the loaded project manifest.
func (b *Builder) Manifest() *ProjectManifest {
	return b.manifest
}

// EntryPath is the absolute-or-root-relative path of the entry file.
func (b *Builder) EntryPath() string {
	entry := b.manifest.EntryPoint
	if entry == "" {
		entry = DefaultEntryPoint
	}
	return b.resolve(entry)
}

// OutputPath is where Build writes the JavaScript.
func (b *Builder) OutputPath() string {
	output := b.config.OutputPath
	if output == "" {
		output = DefaultOutputPath
	}
	return b.resolve(output)
}

func (b *Builder) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(b.projectRoot, path)
}

// Build compiles the project's entry point
func (b *Builder) Build() (*BuildResult, error) {
	fmt.Fprintf(b.out, "Building %s v%s...\n", b.manifest.Name, b.manifest.Version)

	result, err := CompileFile(b.EntryPath(), b.OutputPath(), b.config.Options())
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(b.out, "Build complete: %s (%s)\n", result.OutputPath, humanize.Bytes(uint64(result.Bytes)))
	return result, nil
}

// Clean removes the compiled output. The default dist directory is removed
// as a whole unless it holds the entry point; any other output directory is
// removed only when nothing else is left in it.
func (b *Builder) Clean() error {
	output := b.OutputPath()
	outDir := filepath.Dir(output)

	rel, err := filepath.Rel(b.projectRoot, outDir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("refusing to clean %s: outside the project", outDir)
	}

	if err := os.Remove(output); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "could not remove %s", output)
	}
	if rel == "." {
		return nil
	}
	if rel == filepath.Dir(DefaultOutputPath) && filepath.Dir(b.EntryPath()) != outDir {
		return os.RemoveAll(outDir)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(entries) == 0 {
		return os.Remove(outDir)
	}
	return nil
}

// Watch rebuilds whenever a source file under the project root is added,
// changed or removed. It builds once up front and returns when ctx is done.
// Build failures are reported and watching continues.
func (b *Builder) Watch(ctx context.Context, interval time.Duration) error {
	fmt.Fprintf(b.out, "Watching %s for changes...\n", b.projectRoot)

	modTimes, err := b.snapshot()
	if err != nil {
		return err
	}
	b.rebuild()

	// Poll for changes
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		current, err := b.snapshot()
		if err != nil {
			continue
		}
		if changed := diffModTimes(modTimes, current); len(changed) > 0 {
			fmt.Fprintf(b.out, "Files changed: %v\n", changed)
			modTimes = current
			b.rebuild()
		}
	}
}

func (b *Builder) rebuild() {
	if _, err := b.Build(); err != nil {
		fmt.Fprintf(b.out, "Build failed: %v\n", err)
	}
}

func (b *Builder) snapshot() (map[string]time.Time, error) {
	files, err := FindSources(b.projectRoot)
	if err != nil {
		return nil, err
	}
	modTimes := make(map[string]time.Time, len(files))
	for _, f := range files {
		info, err := os.Stat(f)
		if err == nil {
			modTimes[f] = info.ModTime()
		}
	}
	return modTimes, nil
}

// diffModTimes lists files that are new, modified or gone, sorted.
func diffModTimes(prev, current map[string]time.Time) []string {
	var changed []string
	for f, mod := range current {
		if prevMod, ok := prev[f]; !ok || mod.After(prevMod) {
			changed = append(changed, f)
		}
	}
	for f := range prev {
		if _, ok := current[f]; !ok {
			changed = append(changed, f)
		}
	}
	sort.Strings(changed)
	return changed
}

// FindSources lists the .rizz files under dir, skipping hidden
// directories and the output directory.
func FindSources(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() && path != dir {
			name := info.Name()
			if strings.HasPrefix(name, ".") || name == "dist" || name == "node_modules" {
				return filepath.SkipDir
			}
		}

		if !info.IsDir() && strings.HasSuffix(info.Name(), SourceExt) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// LoadManifest loads the project manifest. A missing manifest yields the
// defaults.
func LoadManifest(projectRoot string) (*ProjectManifest, error) {
	manifestPath := filepath.Join(projectRoot, ManifestName)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultManifest(filepath.Base(projectRoot)), nil
		}
		return nil, err
	}

	var manifest ProjectManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", manifestPath)
	}
	if err := manifest.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", manifestPath)
	}

	return &manifest, nil
}

// DefaultManifest is the manifest used when a project has none.
func DefaultManifest(name string) *ProjectManifest {
	return &ProjectManifest{
		Name:       name,
		Version:    "0.1.0",
		EntryPoint: DefaultEntryPoint,
		BuildConfig: BuildConfig{
			OutputPath: DefaultOutputPath,
		},
	}
}

// Validate checks the fields a build depends on.
func (m *ProjectManifest) Validate() error {
	if m.Version != "" && !semver.IsValid("v"+strings.TrimPrefix(m.Version, "v")) {
		return fmt.Errorf("version %q is not a semantic version", m.Version)
	}
	if m.BuildConfig.Indent < 0 {
		return fmt.Errorf("build.indent must not be negative, got %d", m.BuildConfig.Indent)
	}
	if m.EntryPoint != "" && filepath.Ext(m.EntryPoint) != SourceExt {
		return fmt.Errorf("entry_point %q is not a %s file", m.EntryPoint, SourceExt)
	}
	return nil
}

// WriteManifest saves m as rizz.json in dir.
func WriteManifest(dir string, m *ProjectManifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return WriteFile(filepath.Join(dir, ManifestName), append(data, '\n'))
}
