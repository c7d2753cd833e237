package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deckslim/deckslim/common/logging"
	"github.com/deckslim/deckslim/common/rcontext"
	"github.com/deckslim/deckslim/common/version"
	"github.com/deckslim/deckslim/pptx"
	"github.com/deckslim/deckslim/swap"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "out":
		runOut(os.Args[2:])
	case "in":
		runIn(os.Args[2:])
	case "version", "-version", "--version":
		version.Print(false)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	_, _ = fmt.Fprintln(os.Stderr, "usage:")
	_, _ = fmt.Fprintln(os.Stderr, "  deckslim out <input.pptx> [--output|-o <dir>]")
	_, _ = fmt.Fprintln(os.Stderr, "  deckslim in <input.pptx> [--manifest-dir|-m <dir>]")
	_, _ = fmt.Fprintln(os.Stderr, "  deckslim version")
}

func runOut(args []string) {
	fs := flag.NewFlagSet("out", flag.ExitOnError)
	var outputDir string
	fs.StringVar(&outputDir, "output", "", "The directory for the slim package, manifest and media files (default: the input's directory)")
	fs.StringVar(&outputDir, "o", "", "Shorthand for -output")
	logDir, logJson, logLevel := logFlags(fs)

	inputPath := parseWithInput(fs, args)
	setupLogging(*logDir, *logJson, *logLevel)

	ctx := rcontext.Initial().LogWithFields(logrus.Fields{"action": "out", "input": inputPath})

	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		logrus.Fatal(err)
	}

	pkg, err := pptx.Open(inputPath)
	if err != nil {
		logrus.Fatalf("Failed to open %s: %v", inputPath, err)
	}

	result, err := swap.SwapOut(ctx, pkg, filepath.Join(outputDir, swap.MediaDirName))
	if err != nil {
		logrus.Fatalf("Swap-out failed: %v", err)
	}

	slimPath := filepath.Join(outputDir, suffixedName(inputPath, "_slim"))
	if err = pkg.SaveTo(slimPath); err != nil {
		logrus.Fatalf("Failed to write %s: %v", slimPath, err)
	}
	manifestPath := filepath.Join(outputDir, swap.ManifestFileName)
	if err = result.Manifest.Save(manifestPath); err != nil {
		logrus.Fatalf("Failed to write %s: %v", manifestPath, err)
	}

	logrus.Infof("Swapped out %d media files (%s reclaimed)", result.Count, humanize.Bytes(uint64(result.BytesReclaimed)))
	logrus.Info("Wrote ", slimPath)
	logrus.Info("Wrote ", manifestPath)
}

func runIn(args []string) {
	fs := flag.NewFlagSet("in", flag.ExitOnError)
	var manifestDir string
	fs.StringVar(&manifestDir, "manifest-dir", "", "The directory holding swap-manifest.json and the media files (default: the input's directory)")
	fs.StringVar(&manifestDir, "m", "", "Shorthand for -manifest-dir")
	logDir, logJson, logLevel := logFlags(fs)

	inputPath := parseWithInput(fs, args)
	setupLogging(*logDir, *logJson, *logLevel)

	ctx := rcontext.Initial().LogWithFields(logrus.Fields{"action": "in", "input": inputPath})

	if manifestDir == "" {
		manifestDir = filepath.Dir(inputPath)
	}

	manifest, err := swap.ReadManifest(filepath.Join(manifestDir, swap.ManifestFileName))
	if err != nil {
		logrus.Fatalf("Failed to read manifest from %s: %v", manifestDir, err)
	}

	pkg, err := pptx.Open(inputPath)
	if err != nil {
		logrus.Fatalf("Failed to open %s: %v", inputPath, err)
	}

	restored, err := swap.SwapIn(ctx, pkg, manifest, manifestDir)
	if err != nil {
		logrus.Fatalf("Swap-in failed: %v", err)
	}

	restoredPath := filepath.Join(filepath.Dir(inputPath), suffixedName(inputPath, "_restored"))
	if err = pkg.SaveTo(restoredPath); err != nil {
		logrus.Fatalf("Failed to write %s: %v", restoredPath, err)
	}

	logrus.Infof("Restored %d of %d media files", restored, len(manifest.MediaFiles))
	logrus.Info("Wrote ", restoredPath)
}

func logFlags(fs *flag.FlagSet) (*string, *bool, *string) {
	logDir := fs.String("log-dir", "-", "The directory for log files, or '-' to log to stdout only")
	logJson := fs.Bool("log-json", false, "Use JSON log lines")
	logLevel := fs.String("log-level", "info", "The minimum log level (debug, info, warn, error)")
	return logDir, logJson, logLevel
}

func setupLogging(dir string, json bool, level string) {
	if err := logging.Setup(dir, false, json, level); err != nil {
		panic(err)
	}
	version.Print(true)
}

// parseWithInput pulls the single positional input path out of args,
// tolerating flags both before and after it.
func parseWithInput(fs *flag.FlagSet, args []string) string {
	_ = fs.Parse(args)
	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(2)
	}
	inputPath := fs.Arg(0)
	if fs.NArg() > 1 {
		_ = fs.Parse(fs.Args()[1:])
	}
	return inputPath
}

func suffixedName(inputPath string, suffix string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + suffix + ext
}
