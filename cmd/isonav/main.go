// Command isonav is a command-line explorer for ISO-9660 images: it can
// print volume information, list a directory, dump a file to stdout, or
// recursively count every entry in the tree.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bgrewell/iso9660nav"
	"github.com/bgrewell/iso9660nav/pkg/logging"
	"github.com/bgrewell/usage"
	"github.com/theckman/yacspin"
	"golang.org/x/term"
)

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("isonav"),
		usage.WithApplicationDescription("isonav inspects ISO-9660 images: print volume information, list directories, dump file contents, or recursively count entries."),
	)

	help := u.AddBooleanOption("h", "help", false, "Show this help message", "optional", nil)
	verbose := u.AddBooleanOption("v", "verbose", false, "Print debug logging to stderr", "optional", nil)
	isoPath := u.AddArgument(1, "iso-path", "Path to the ISO-9660 image on disk", "")
	command := u.AddArgument(2, "command", "One of: info, ls, cat, count", "info")
	target := u.AddArgument(3, "path", "Path within the image (for ls/cat)", "/")

	if !u.Parse() {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}

	if *help {
		u.PrintUsage()
		os.Exit(0)
	}
	if isoPath == nil || *isoPath == "" {
		u.PrintError(fmt.Errorf("path to the iso file <iso-path> must be provided"))
		os.Exit(1)
	}

	useColor := term.IsTerminal(int(os.Stdout.Fd()))
	logVerbosity := logging.LEVEL_INFO
	if *verbose {
		logVerbosity = logging.LEVEL_DEBUG
	}
	sink := logging.NewSimpleLogger(os.Stderr, logVerbosity, useColor)

	fs, err := iso9660nav.FromPath(*isoPath, iso9660nav.WithLogger(sink))
	if err != nil {
		u.PrintError(fmt.Errorf("failed to open %s: %w", *isoPath, err))
		os.Exit(1)
	}
	defer fs.Close()

	switch *command {
	case "info":
		runInfo(fs, *isoPath)
	case "ls":
		runList(fs, *target)
	case "cat":
		runCat(fs, *target)
	case "count":
		runCount(fs, useColor)
	default:
		u.PrintError(fmt.Errorf("unknown command: %s", *command))
		os.Exit(1)
	}
}

func runInfo(fs *iso9660nav.FileSystem, path string) {
	meta, err := fs.Metadata("/")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read root metadata: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Image:        %s\n", path)
	fmt.Printf("Root path:    %s\n", meta.Path())
	entries, err := fs.ReadDir("/")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list root: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Top-level entries: %d\n", len(entries))
}

func runList(fs *iso9660nav.FileSystem, path string) {
	entries, err := fs.ReadDir(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list %s: %v\n", path, err)
		os.Exit(1)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		kind := "FILE"
		if e.IsDir() {
			kind = "DIR "
		}
		fmt.Printf("%s  %10d  %s\n", kind, e.Size(), e.Name())
	}
}

func runCat(fs *iso9660nav.FileSystem, path string) {
	f, err := fs.OpenFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open %s: %v\n", path, err)
		os.Exit(1)
	}
	defer f.Close()
	if _, err := io.Copy(os.Stdout, f); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", path, err)
		os.Exit(1)
	}
}

// runCount walks the entire tree under "/" recursively, counting every
// entry. When stdout is a terminal it shows a spinner while it works,
// since large images can take a while to traverse.
func runCount(fs *iso9660nav.FileSystem, useColor bool) {
	var spinner *yacspin.Spinner
	if useColor {
		cfg := yacspin.Config{
			Frequency:       100_000_000,
			CharSet:         yacspin.CharSets[9],
			Suffix:          " counting entries",
			SuffixAutoColon: true,
			Colors:          []string{"fgYellow"},
		}
		s, err := yacspin.New(cfg)
		if err == nil {
			spinner = s
			_ = spinner.Start()
		}
	}

	count, err := countRecursive(fs, "/")

	if spinner != nil {
		_ = spinner.Stop()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "count failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d entries\n", count)
}

func countRecursive(fs *iso9660nav.FileSystem, path string) (int, error) {
	entries, err := fs.ReadDir(path)
	if err != nil {
		return 0, err
	}
	total := len(entries)
	for _, e := range entries {
		if e.IsDir() {
			n, err := countRecursive(fs, e.Path())
			if err != nil {
				return 0, err
			}
			total += n
		}
	}
	return total, nil
}
