// Preservationist finds albums in a local music library whose embedded
// metadata and cover art are inconsistent. It only reads files; it never
// repairs them.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sorenlind/preservationist/internal/config"
	"github.com/sorenlind/preservationist/internal/errmsg"
	"github.com/sorenlind/preservationist/internal/library"
	"github.com/sorenlind/preservationist/internal/logging"
	"github.com/sorenlind/preservationist/internal/report"
	"github.com/sorenlind/preservationist/internal/tags"
	"github.com/sorenlind/preservationist/internal/ui/scanbar"
)

const version = "0.3.0"

const usage = `Usage: preservationist <command> [flags]

Commands:
  diagnose   find albums with messy metadata or artwork
  version    print the version number
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "diagnose":
		if err := runDiagnose(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "version":
		fmt.Println("preservationist " + version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

func runDiagnose(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpLoadConfig, err))
	}

	fs := flag.NewFlagSet("diagnose", flag.ExitOnError)
	inputFolder := fs.String("input-folder", cfg.InputFolder, "music library folder to diagnose")
	outputFile := fs.String("output-file", cfg.OutputFile, "write a CSV report to this file instead of the console")
	verbose := fs.Bool("verbose", cfg.Verbose, "show status for all albums and extractor diagnostics")
	workers := fs.Int("workers", cfg.Workers, "number of album workers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inputFolder == "" {
		fs.Usage()
		return fmt.Errorf("diagnose: --input-folder is required")
	}

	logger := logging.New(os.Stderr, *verbose)
	logger.Infof("finding albums with messy artwork in %s", *inputFolder)

	scanner := library.NewScanner(tags.NewExtractor(logger.Debugf), *workers)

	albums, err := scan(scanner, *inputFolder, *verbose)
	if err != nil {
		return fmt.Errorf("%s", errmsg.FormatWith(errmsg.OpScanLibrary, *inputFolder, err))
	}

	if *outputFile != "" {
		if err := writeCSV(*outputFile, albums); err != nil {
			return fmt.Errorf("%s", errmsg.FormatWith(errmsg.OpWriteReport, *outputFile, err))
		}
		logger.Infof("wrote %d albums to %s", len(albums), *outputFile)
		return nil
	}

	console := report.Console{Out: os.Stdout, Verbose: *verbose}
	for _, a := range albums {
		console.WriteAlbum(a)
	}
	console.WriteSummary(albums)
	return nil
}

// scan runs the scanner with a progress bar on stderr. In verbose mode the
// bar is skipped so extractor diagnostics stay readable.
func scan(scanner *library.Scanner, root string, verbose bool) ([]*library.Album, error) {
	if verbose {
		return scanner.Scan(root, nil)
	}

	progressCh := make(chan library.ScanProgress)

	var albums []*library.Album
	var scanErr error
	scanDone := make(chan struct{})
	go func() {
		defer close(scanDone)
		albums, scanErr = scanner.Scan(root, progressCh)
	}()

	p := tea.NewProgram(scanbar.New(), tea.WithOutput(os.Stderr))
	go func() {
		for pr := range progressCh {
			p.Send(scanbar.Msg(pr))
		}
		// The channel closes once the scan result is ready.
		<-scanDone
		p.Send(scanbar.DoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		<-scanDone
		if scanErr != nil {
			return nil, scanErr
		}
		return nil, err
	}
	<-scanDone
	return albums, scanErr
}

func writeCSV(path string, albums []*library.Album) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f, albums); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
