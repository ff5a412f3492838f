package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/amsterdam/sensorregister/internal/app"
	"github.com/amsterdam/sensorregister/internal/config"
	"github.com/amsterdam/sensorregister/internal/reconcile"
	"github.com/amsterdam/sensorregister/internal/spreadsheet"
	"github.com/amsterdam/sensorregister/internal/validation"
)

func main() {
	var (
		xlsxPath = flag.String("file", "", "path to a compact or bulk registration workbook (.xlsx)")
		csvDir   = flag.String("csv-dir", "", "directory with one CSV file per sheet, instead of -file")
		dryRun   = flag.Bool("dry-run", false, "parse and validate only; no DB writes")
	)
	flag.Parse()

	if (*xlsxPath == "") == (*csvDir == "") {
		flag.Usage()
		os.Exit(2)
	}

	wb, source, err := open(*xlsxPath, *csvDir)
	if err != nil {
		log.Fatal().Err(err).Msg("opening workbook")
	}
	if c, ok := wb.(io.Closer); ok {
		defer c.Close()
	}

	if *dryRun {
		cfg, err := config.LoadFromEnv()
		if err != nil {
			log.Fatal().Err(err).Msg("loading config")
		}
		if err := check(wb, cfg.Spreadsheet); err != nil {
			log.Fatal().Err(err).Msg("workbook rejected")
		}
		return
	}

	ctx, a, err := app.Bootstrap(context.Background(), os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer a.Close()

	res, err := a.Service.ImportSpreadsheet(ctx, source, wb, a.Config.Spreadsheet)
	if err != nil && !errors.Is(err, reconcile.ErrDuplicateReferences) {
		a.Log.Fatal().Err(err).Str("source", source).Msg("import failed")
	}
	if len(res.Errors) > 0 {
		os.Exit(1)
	}
}

func open(xlsxPath, csvDir string) (spreadsheet.Workbook, string, error) {
	if csvDir != "" {
		g, err := spreadsheet.LoadCSVDir(csvDir)
		if err != nil {
			return nil, "", err
		}
		return g, filepath.Base(csvDir), nil
	}
	x, err := spreadsheet.OpenXLSX(xlsxPath)
	if err != nil {
		return nil, "", err
	}
	return x, filepath.Base(xlsxPath), nil
}

// check parses and validates the workbook and prints every problem.
func check(wb spreadsheet.Workbook, cfg spreadsheet.Config) error {
	seq, err := spreadsheet.Parse(wb, cfg)
	if err != nil {
		return err
	}
	records := slices.Collect(seq)

	problems := reconcile.Duplicates(records)
	for _, r := range records {
		if err := validation.ValidatePerson(r.Owner); err != nil {
			problems = append(problems, fmt.Errorf("Foutieve persoon data voor %s (rij %d): %w", r.Reference, r.Row, err))
		}
		if err := validation.ValidateSensor(r); err != nil {
			problems = append(problems, err)
		}
	}

	fmt.Printf("%d sensoren gevonden\n", len(records))
	for _, p := range problems {
		fmt.Println("-", p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d problems found", len(problems))
	}
	return nil
}
