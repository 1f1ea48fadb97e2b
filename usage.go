package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/flowlens/flowlens/log"
	"github.com/flowlens/flowlens/pregen"
)

type parseResult int // This is a ternary variable
const (
	parseStop     parseResult = iota // No error, but don't continue
	parseContinue                    // No errors and continue
	parseFailed                      // Errors, do not continue
)

// parseOptions fills t.cfg from the command line. The pflag package is given a
// ContinueOnError flag set so usage and errors land on our log writer where tests can
// see them, rather than going straight to stderr.
func (t *flowlens) parseOptions(args []string) parseResult {
	var helpFlag, versionFlag bool

	name := programName
	if len(args) > 0 {
		name = args[0]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Consider '-h' for command-line usage")
	}
	fs.SetOutput(log.Out())

	fs.BoolVarP(&helpFlag, "help", "h", false, "Print command-line usage")
	fs.BoolVarP(&versionFlag, "version", "v", false, "Print version and origin details")

	fs.StringVar(&t.cfg.fwType, "fw", "",
		"Input format: 'huawei' CSV export or 'fortigate' text log")
	fs.StringVar(&t.cfg.tenant, "tenant", "",
		"NetBox tenant name used to break attribution ties")
	fs.StringVar(&t.cfg.inputFile, "file", "", "Path of the input log")

	fs.BoolVar(&t.cfg.resolveDst, "resolve-dst", false,
		"Reverse-resolve destination addresses to hostnames")
	fs.IntVar(&t.cfg.concurrency, "concurrency", t.cfg.concurrency,
		"Reverse-DNS worker pool size")
	fs.StringSliceVar(&t.cfg.nameservers, "nameserver", nil,
		"Nameserver for reverse lookups - repeat for more than one")
	fs.DurationVar(&t.cfg.dnsTimeout, "timeout", t.cfg.dnsTimeout,
		"Per reverse-DNS query timeout")

	fs.StringVar(&t.cfg.outputDir, "output-dir", t.cfg.outputDir,
		"Directory for report files, created on demand")
	fs.BoolVar(&t.cfg.csvFlag, "csv", false, "Also write the summary as CSV")
	fs.BoolVar(&t.cfg.noExcel, "no-excel", false, "Skip the Excel workbook")

	fs.BoolVar(&t.cfg.logMajorFlag, "log-major", t.cfg.logMajorFlag,
		"Log progress to Stdout - set =false for silence")
	fs.BoolVar(&t.cfg.logMinorFlag, "log-minor", false,
		"Log per-address details - this implies --log-major")
	fs.BoolVar(&t.cfg.logDebugFlag, "log-debug", false,
		"Developer logging - this implies --log-minor")

	err := fs.Parse(args[1:])
	if err != nil {
		fmt.Fprintln(log.Out(), "Error:", err.Error())
		return parseFailed
	}

	if helpFlag {
		usage(fs)
		return parseStop
	}
	if versionFlag {
		t.cfg.printVersion()
		return parseStop
	}

	if fs.NArg() > 0 {
		fmt.Fprintln(log.Out(), "Error: unexpected arguments on command line:", fs.Args())
		return parseFailed
	}

	return parseContinue
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintf(log.Out(), usageMessage, programName)
	fmt.Fprintln(log.Out(), fs.FlagUsages())
}

const usageMessage = `NAME
     %s -- enrich firewall traffic logs with NetBox attribution and reverse DNS

SYNOPSIS
     flowlens --fw huawei|fortigate --tenant Name --file path [options]

DESCRIPTION
     Source addresses are attributed to their most specific prefix known to NetBox;
     destination addresses are optionally reverse-resolved. The grouped, counted
     summary goes to the console and an Excel workbook under --output-dir.

     NetBox connection settings come from the environment, optionally via a .env
     file in the working directory: NETBOX_URL and NETBOX_TOKEN.

EXAMPLES
     flowlens --fw=huawei --tenant=Moscow --file=policy_org.csv
     flowlens --fw=fortigate --tenant=Berlin --file=fw.log --resolve-dst

OPTIONS
`

// printVersion prints all the version details of interest in a way that gets them
// echoed back in to any problem reports.
func (t *config) printVersion() {
	fmt.Fprintln(log.Out(), "Program:", programName, pregen.Version,
		"Released:", pregen.ReleaseDate)
	fmt.Fprintln(log.Out(), "Project:", t.projectURL)
}
