package main

import (
	"time"

	"github.com/flowlens/flowlens/rdns"
)

const (
	programName       = "flowlens"
	defaultProjectURL = "https://github.com/flowlens/flowlens"

	defaultOutputDir  = "parse_log_result"
	defaultReportBase = "traffic_analysis"

	defaultDNSTimeout = 1600 * time.Millisecond
)

// Input format names accepted by --fw.
const (
	fwHuawei    = "huawei"
	fwFortigate = "fortigate"
)

// config holds the settings for one run. It is filled by parseOptions plus the
// environment and never changes afterwards, so it is shared without locking.
type config struct {
	projectURL string

	fwType    string // --fw
	tenant    string // --tenant
	inputFile string // --file

	resolveDst  bool          // --resolve-dst
	concurrency int           // --concurrency
	nameservers []string      // --nameserver (repeatable)
	dnsTimeout  time.Duration // --timeout

	outputDir string // --output-dir
	csvFlag   bool   // --csv
	noExcel   bool   // --no-excel

	logMajorFlag bool // --log-major (default true; =false silences progress)
	logMinorFlag bool // --log-minor
	logDebugFlag bool // --log-debug

	// From the environment (optionally via a .env file)
	netboxURL   string // NETBOX_URL
	netboxToken string // NETBOX_TOKEN, or TOKEN for compatibility with older tooling
}

func newConfig() *config {
	return &config{
		projectURL:   defaultProjectURL,
		concurrency:  rdns.DefaultConcurrency,
		dnsTimeout:   defaultDNSTimeout,
		outputDir:    defaultOutputDir,
		logMajorFlag: true,
	}
}
