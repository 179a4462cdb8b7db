// Command fines-batch analyzes fines certificates from the command line and
// optionally writes a filings pack for each one with eligible fines.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/a3tai/mcp-fines-reader/internal/batch"
	"github.com/a3tai/mcp-fines-reader/internal/config"
	"github.com/a3tai/mcp-fines-reader/internal/pdf"
)

type options struct {
	pack   bool
	asJSON bool
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	pack := pflag.Bool("pack", false, "Write a filings pack for every certificate with eligible fines")
	asJSON := pflag.Bool("json", false, "Print the report as JSON")

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !cfg.IsDebug() {
		log.SetOutput(io.Discard)
	}

	service, err := pdf.NewService(pdf.Options{
		MaxFileSize:     cfg.MaxFileSize,
		Directory:       cfg.CertificateDirectory,
		OutputDirectory: cfg.OutputDirectory,
		Template:        cfg.ExtractionTemplate(),
		ArtifactPrefix:  cfg.ArtifactPrefix,
		Clock:           cfg.Clock(),
		Debug:           cfg.IsDebug(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create certificate service: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := options{pack: *pack, asJSON: *asJSON}
	if err := run(ctx, service, cfg.Workers, pflag.Args(), opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run analyzes paths, or every PDF in the configured directory when no
// path is given, and prints the report to w.
func run(ctx context.Context, service *pdf.Service, workers int, paths []string, opts options, w io.Writer) error {
	if len(paths) == 0 {
		found, err := service.SearchDirectory(pdf.CertificateSearchDirectoryRequest{})
		if err != nil {
			return fmt.Errorf("failed to list certificates: %w", err)
		}
		for _, f := range found.Files {
			paths = append(paths, f.Path)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no certificates to analyze")
	}

	report, err := batch.NewProcessor(service, workers).Run(ctx, paths)
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	packs := map[string]string{}
	if opts.pack {
		for _, item := range report.Items {
			if item.Result == nil || !item.Result.Outcome.HasRecords() {
				continue
			}
			result, err := service.GeneratePack(pdf.CertificatePackRequest{Path: item.Path})
			if err != nil {
				log.Printf("pack %s: %v", item.Path, err)
				continue
			}
			packs[item.Path] = result.PackPath
		}
	}

	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			*batch.Report
			Packs map[string]string `json:"packs,omitempty"`
		}{report, packs})
	}

	printReport(w, report, packs)
	return nil
}

func printReport(w io.Writer, report *batch.Report, packs map[string]string) {
	for _, item := range report.Items {
		switch {
		case item.Error != "":
			fmt.Fprintf(w, "%s\tERROR\t%s\n", item.Path, item.Error)
		case item.Result.Outcome.IsRejected():
			fmt.Fprintf(w, "%s\tREJECTED\n", item.Path)
		default:
			outcome := item.Result.Outcome
			fmt.Fprintf(w, "%s\t%s\t%d fine(s)", item.Path, outcome.Subject.Plate, len(outcome.Records))
			if p, ok := packs[item.Path]; ok {
				fmt.Fprintf(w, "\t%s", p)
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "\n%d accepted, %d rejected, %d failed; %d eligible fine(s), estimated savings $%d CLP\n",
		report.Accepted, report.Rejected, report.Failed, report.TotalRecords, report.EstimatedSavings)
}
