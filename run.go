package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/flowlens/flowlens/attribute"
	"github.com/flowlens/flowlens/enrich"
	"github.com/flowlens/flowlens/log"
	"github.com/flowlens/flowlens/netbox"
	"github.com/flowlens/flowlens/rdns"
	"github.com/flowlens/flowlens/record"
	"github.com/flowlens/flowlens/report"
)

// run is the whole program once options are settled: load the environment, parse the
// input, enrich, summarize, report. Interrupts cancel in-flight network calls via the
// context; whatever has been resolved by then still lands in the caches as-is.
func (t *flowlens) run() error {
	if err := t.loadEnvironment(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recs, err := t.loadRecords()
	if err != nil {
		return err
	}
	log.Majorf("%d traffic records from %s", len(recs), t.cfg.inputFile)

	prefixes := attribute.NewResolver(netbox.NewClient(t.cfg.netboxURL, t.cfg.netboxToken))
	hosts, err := rdns.NewResolver(rdns.Config{
		Nameservers: t.cfg.nameservers,
		Timeout:     t.cfg.dnsTimeout,
	})
	if err != nil {
		return err
	}

	pipe := enrich.New(prefixes, hosts, t.cfg.concurrency)
	enriched := pipe.Enrich(ctx, recs, t.cfg.tenant, t.cfg.resolveDst)
	if err = ctx.Err(); err != nil {
		return fmt.Errorf("interrupted: %w", err)
	}

	rows := record.Summarize(enriched)
	log.Minorf("%d distinct prefixes discovered", prefixes.Store().Len())

	report.WriteConsole(log.Out(), rows)

	if err = t.writeReports(rows); err != nil {
		return err
	}

	t.statsReport(prefixes, hosts)

	return nil
}

// loadEnvironment pulls the NetBox connection settings from the environment, reading
// a .env file first when one exists in the working directory.
func (t *flowlens) loadEnvironment() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		warning(err, "could not read .env")
	}

	t.cfg.netboxURL = os.Getenv("NETBOX_URL")
	t.cfg.netboxToken = os.Getenv("NETBOX_TOKEN")
	if len(t.cfg.netboxToken) == 0 {
		t.cfg.netboxToken = os.Getenv("TOKEN") // Older tooling used the short name
	}

	if len(t.cfg.netboxURL) == 0 {
		return fmt.Errorf("NETBOX_URL is not set - export it or put it in .env")
	}
	if len(t.cfg.netboxToken) == 0 {
		warning(nil, "no NETBOX_TOKEN set, querying NetBox anonymously")
	}

	return nil
}

func (t *flowlens) loadRecords() ([]record.Traffic, error) {
	f, err := os.Open(t.cfg.inputFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch t.cfg.fwType {
	case fwFortigate:
		return record.ParseFortigate(f)
	default:
		return record.ParseCSV(f)
	}
}

func (t *flowlens) writeReports(rows []record.SummaryRow) error {
	xlsxPath := report.TimestampedPath(t.cfg.outputDir, defaultReportBase, time.Now())

	if t.cfg.csvFlag {
		csvPath := strings.TrimSuffix(xlsxPath, ".xlsx") + ".csv"
		if err := os.MkdirAll(t.cfg.outputDir, 0755); err != nil {
			return err
		}
		f, err := os.Create(csvPath)
		if err != nil {
			return err
		}
		err = report.WriteCSV(f, rows)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		log.Majorf("Saved CSV: %s", csvPath)
	}

	if !t.cfg.noExcel {
		if err := report.WriteExcel(xlsxPath, rows); err != nil {
			return err
		}
		log.Majorf("Saved Excel: %s", xlsxPath)
	}

	return nil
}
