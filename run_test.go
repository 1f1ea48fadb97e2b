package main

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flowlens/flowlens/log"
	"github.com/flowlens/flowlens/mock"
)

const runInput = `Source Address,Destination Address,Destination Port,Protocol
10.1.2.3,8.8.8.8,443,6
10.1.2.3,8.8.8.8,443,6
10.99.0.1,1.1.1.1,53,17
`

func TestRunEndToEnd(t *testing.T) {
	// A NetBox which knows 10.1.0.0/16 and nothing else
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("contains") == "10.1.2.3" {
			fmt.Fprint(w, `{"count": 1, "next": null, "results": [
 {"prefix": "10.1.0.0/16", "description": "",
  "vlan": {"name": "V101", "display": "V101 office"},
  "role": null, "tenant": {"name": "Berlin", "display": "Berlin", "slug": "berlin"}}]}`)
			return
		}
		fmt.Fprint(w, `{"count": 0, "next": null, "results": []}`)
	}))
	defer srv.Close()
	t.Setenv("NETBOX_URL", srv.URL)
	t.Setenv("NETBOX_TOKEN", "test-token")

	dir := t.TempDir()
	inputFile := filepath.Join(dir, "policy.csv")
	if err := os.WriteFile(inputFile, []byte(runInput), 0644); err != nil {
		t.Fatal(err)
	}

	out := &mock.IOWriter{}
	log.SetOut(out)
	log.SetLevel(log.MajorLevel)
	defer log.SetLevel(log.SilentLevel)

	fl := newFlowlens()
	fl.cfg.fwType = fwHuawei
	fl.cfg.tenant = "Berlin"
	fl.cfg.inputFile = inputFile
	fl.cfg.outputDir = filepath.Join(dir, "out")
	fl.cfg.csvFlag = true
	fl.cfg.noExcel = true // Workbook writing is covered in the report package

	if err := fl.ValidateCommandLineOptions(); err != nil {
		t.Fatal("Validation failed", err)
	}
	if err := fl.run(); err != nil {
		t.Fatal("run failed", err)
	}

	got := out.String()
	if !strings.Contains(got, "3 traffic records") {
		t.Error("Record count missing from output", got)
	}
	if !strings.Contains(got, "V101 office-Berlin") {
		t.Error("Attribution missing from console summary", got)
	}
	if !strings.Contains(got, "Distinct combinations: 2") {
		t.Error("Grouping wrong", got)
	}
	if !strings.Contains(got, "Attribution: ") {
		t.Error("Stats report missing", got)
	}

	// The CSV sibling of the workbook must exist and parse
	matches, err := filepath.Glob(filepath.Join(dir, "out", "traffic_analysis_*.csv"))
	if err != nil || len(matches) != 1 {
		t.Fatal("Expected one CSV report, got", matches, err)
	}
	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	lines, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal("Report CSV did not parse", err)
	}
	if len(lines) != 3 { // Header + 2 groups
		t.Error("Unexpected report size", lines)
	}
}

func TestRunMissingEnvironment(t *testing.T) {
	t.Setenv("NETBOX_URL", "")
	t.Setenv("NETBOX_TOKEN", "")
	t.Setenv("TOKEN", "")

	fl := newFlowlens()
	fl.cfg.fwType = fwHuawei
	fl.cfg.tenant = "Berlin"
	fl.cfg.inputFile = "does-not-matter.csv"

	err := fl.run()
	if err == nil || !strings.Contains(err.Error(), "NETBOX_URL") {
		t.Error("Expected NETBOX_URL error, got", err)
	}
}

func TestRunMissingInputFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count": 0, "next": null, "results": []}`)
	}))
	defer srv.Close()
	t.Setenv("NETBOX_URL", srv.URL)
	t.Setenv("NETBOX_TOKEN", "x")

	fl := newFlowlens()
	fl.cfg.fwType = fwHuawei
	fl.cfg.tenant = "Berlin"
	fl.cfg.inputFile = filepath.Join(t.TempDir(), "absent.csv")

	if err := fl.run(); err == nil {
		t.Error("Expected error for a missing input file")
	}
}
