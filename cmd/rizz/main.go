// cmd/rizz/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"rizz/cmd/rizz/commands"
	"rizz/internal/codegen"
	rizzerrors "rizz/internal/errors"
	"rizz/internal/repl"
)

const VERSION = "1.0.0"

// Build variables - can be set during build with ldflags
var (
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	log.SetFlags(0)
	log.SetPrefix("rizz: ")

	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return 0
	}

	var err error
	switch args[0] {
	case "--help", "-h", "help":
		showUsage()
		return 0
	case "--version", "-v", "version":
		showVersion()
		return 0
	case "build":
		err = commands.BuildCommand(args[1:])
	case "check":
		err = commands.CheckCommand(args[1:])
	case "fmt":
		err = commands.FmtCommand(args[1:])
	case "tokens":
		err = commands.TokensCommand(args[1:])
	case "init":
		err = commands.InitCommand(args[1:])
	case "clean":
		err = commands.CleanCommand(args[1:])
	case "watch":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = commands.WatchCommand(ctx, args[1:])
		stop()
	case "repl":
		err = repl.Start(os.Stdin, os.Stdout, codegen.DefaultOptions())
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		showUsage()
		return 1
	}

	if err != nil {
		printError(err)
		return 1
	}
	return 0
}

// printError renders compile errors with their source line and caret.
// Everything else goes through the logger.
func printError(err error) {
	var rerr *rizzerrors.RizzError
	if errors.As(err, &rerr) {
		fmt.Fprint(os.Stderr, rerr.Pretty(useColor()))
		return
	}
	log.Printf("Error: %v", err)
}

func useColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func showUsage() {
	fmt.Println("Rizz - compiles Rizz source to JavaScript")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  rizz build [file|dir] [-o out.js] [-indent n]   Compile a file or project")
	fmt.Println("  rizz check <file.rizz>     Check syntax without compiling")
	fmt.Println("  rizz fmt <file.rizz>       Format Rizz code")
	fmt.Println("  rizz tokens <file.rizz>    Print the token stream")
	fmt.Println("  rizz repl                  Start interactive REPL")
	fmt.Println()
	fmt.Println("Project Management:")
	fmt.Println("  rizz init [name]           Initialize a new Rizz project")
	fmt.Println("  rizz watch [dir]           Watch and rebuild on changes")
	fmt.Println("  rizz clean [dir]           Clean build artifacts")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  rizz init my-app")
	fmt.Println("  rizz build main.rizz")
	fmt.Println("  rizz build my-app -indent 2")
}

func showVersion() {
	fmt.Printf("Rizz v%s\n", VERSION)
	fmt.Printf("Build Date: %s\n", BuildDate)
	if GitCommit != "unknown" {
		fmt.Printf("Git Commit: %s\n", GitCommit)
	}
}
