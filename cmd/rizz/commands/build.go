// cmd/rizz/commands/build.go
package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"rizz/internal/build"
	"rizz/internal/codegen"
)

// WatchInterval is how often watch polls the project for changes.
var WatchInterval = 500 * time.Millisecond

// parseArgs parses flags that may appear before or after the positional
// arguments, e.g. "build main.rizz -o out.js".
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func projectRoot(positional []string) string {
	if len(positional) > 0 {
		return positional[0]
	}
	return "."
}

// BuildCommand compiles a single .rizz file, or a project directory using
// its rizz.json.
func BuildCommand(args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	output := fs.String("o", "", "output file (default "+build.DefaultOutputPath+")")
	indent := fs.Int("indent", 0, "spaces per indentation level (default 4)")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("build takes at most one file or directory, got %d", len(positional))
	}

	target := projectRoot(positional)
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		opts := codegen.DefaultOptions()
		if *indent > 0 {
			opts = build.BuildConfig{Indent: *indent}.Options()
		}
		out := *output
		if out == "" {
			out = build.DefaultOutputPath
		}
		result, err := build.CompileFile(target, out, opts)
		if err != nil {
			return err
		}
		fmt.Printf("Code written to %s (%s)\n", result.OutputPath, humanize.Bytes(uint64(result.Bytes)))
		return nil
	}

	builder, err := build.NewBuilder(target)
	if err != nil {
		return fmt.Errorf("failed to initialize builder: %w", err)
	}
	if *output != "" {
		builder.Manifest().BuildConfig.OutputPath, _ = filepath.Abs(*output)
	}
	if *indent > 0 {
		builder.Manifest().BuildConfig.Indent = *indent
	}

	_, err = builder.Build()
	return err
}

// WatchCommand handles the watch command
func WatchCommand(ctx context.Context, args []string) error {
	builder, err := build.NewBuilder(projectRoot(args))
	if err != nil {
		return fmt.Errorf("failed to initialize builder: %w", err)
	}

	return builder.Watch(ctx, WatchInterval)
}

// CleanCommand handles the clean command
func CleanCommand(args []string) error {
	builder, err := build.NewBuilder(projectRoot(args))
	if err != nil {
		return fmt.Errorf("failed to initialize builder: %w", err)
	}

	if err := builder.Clean(); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", builder.OutputPath())
	return nil
}

// InitCommand initializes a new Rizz project
func InitCommand(args []string) error {
	projectName := "rizz-project"
	if len(args) > 0 {
		projectName = args[0]
	}

	fmt.Printf("Initializing new Rizz project: %s\n", projectName)

	// Create project directory
	if err := os.MkdirAll(projectName, 0755); err != nil {
		return err
	}

	mainPath := filepath.Join(projectName, build.DefaultEntryPoint)
	if _, err := os.Stat(mainPath); err == nil {
		return fmt.Errorf("%s already exists", mainPath)
	}

	manifest := build.DefaultManifest(filepath.Base(projectName))
	if err := build.WriteManifest(projectName, manifest); err != nil {
		return err
	}

	// Create main.rizz
	mainContent := `# Main entry point for the project
nocap greeting = "hello";

finna greet(name) {
    yap(` + "`${greeting}, ${name}`" + `);
}

greet("world");
`
	if err := os.WriteFile(mainPath, []byte(mainContent), 0644); err != nil {
		return err
	}

	gitignoreContent := "dist/\n"
	if err := os.WriteFile(filepath.Join(projectName, ".gitignore"), []byte(gitignoreContent), 0644); err != nil {
		return err
	}

	fmt.Printf("Created %s, %s and .gitignore\n", build.ManifestName, build.DefaultEntryPoint)
	return nil
}
