package main

import (
	"strings"
	"testing"
	"time"

	"github.com/flowlens/flowlens/log"
	"github.com/flowlens/flowlens/mock"
)

// Why not?
func TestVersion(t *testing.T) {
	out := &mock.IOWriter{}
	log.SetOut(out)
	cfg := newConfig()
	cfg.printVersion()
	got := out.String()
	if !strings.Contains(got, "Program:") ||
		!strings.Contains(got, "Project:") ||
		!strings.Contains(got, programName) ||
		!strings.Contains(got, cfg.projectURL) {
		t.Error("Unexpected version output", got)
	}
}

func TestParseOptions(t *testing.T) {
	out := &mock.IOWriter{}
	log.SetOut(out)

	fl := newFlowlens()
	res := fl.parseOptions([]string{programName,
		"--fw=fortigate", "--tenant=Berlin", "--file=fw.log",
		"--resolve-dst", "--concurrency=40",
		"--nameserver=192.0.2.53", "--nameserver=192.0.2.54",
		"--timeout=2s", "--csv", "--log-minor"})
	if res != parseContinue {
		t.Fatal("Expected parseContinue, got", res, out.String())
	}

	cfg := fl.cfg
	if cfg.fwType != "fortigate" || cfg.tenant != "Berlin" || cfg.inputFile != "fw.log" {
		t.Error("Basic options not transferred", cfg)
	}
	if !cfg.resolveDst || cfg.concurrency != 40 || !cfg.csvFlag || !cfg.logMinorFlag {
		t.Error("Flag options not transferred", cfg)
	}
	if !cfg.logMajorFlag {
		t.Error("--log-major should default true")
	}
	if len(cfg.nameservers) != 2 || cfg.nameservers[1] != "192.0.2.54" {
		t.Error("Repeatable nameserver option wrong", cfg.nameservers)
	}
	if cfg.dnsTimeout != 2*time.Second {
		t.Error("Timeout not parsed", cfg.dnsTimeout)
	}
}

func TestParseOptionsStopAndFail(t *testing.T) {
	out := &mock.IOWriter{}
	log.SetOut(out)

	if res := newFlowlens().parseOptions([]string{programName, "-h"}); res != parseStop {
		t.Error("-h should stop, got", res)
	}
	if !strings.Contains(out.String(), "SYNOPSIS") {
		t.Error("Usage output missing", out.String())
	}

	out.Reset()
	if res := newFlowlens().parseOptions([]string{programName, "-v"}); res != parseStop {
		t.Error("-v should stop, got", res)
	}

	if res := newFlowlens().parseOptions([]string{programName, "--no-such-flag"}); res != parseFailed {
		t.Error("Unknown flag should fail, got", res)
	}
	if res := newFlowlens().parseOptions([]string{programName, "stray"}); res != parseFailed {
		t.Error("Stray argument should fail, got", res)
	}
}

func TestValidateCommandLineOptions(t *testing.T) {
	testCases := []struct {
		adjust func(*config)
		expect string // Substring of the error, empty for ok
	}{
		{func(c *config) {}, "--fw is required"},
		{func(c *config) { c.fwType = "cisco" }, "--fw must be"},
		{func(c *config) { c.fwType = fwHuawei }, "--tenant is required"},
		{func(c *config) { c.fwType = fwHuawei; c.tenant = "Berlin" }, "--file is required"},
		{func(c *config) {
			c.fwType = fwHuawei
			c.tenant = "Berlin"
			c.inputFile = "x.csv"
			c.concurrency = 0
		}, "--concurrency"},
		{func(c *config) {
			c.fwType = fwFortigate
			c.tenant = "Berlin"
			c.inputFile = "x.log"
		}, ""},
	}

	for ix, tc := range testCases {
		fl := newFlowlens()
		tc.adjust(fl.cfg)
		err := fl.ValidateCommandLineOptions()
		if len(tc.expect) == 0 {
			if err != nil {
				t.Error(ix, "Unexpected error", err)
			}
			continue
		}
		if err == nil {
			t.Error(ix, "Expected error containing", tc.expect)
			continue
		}
		if !strings.Contains(err.Error(), tc.expect) {
			t.Error(ix, "Wrong error", err)
		}
	}
}
