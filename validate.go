package main

import (
	"fmt"
)

// ValidateCommandLineOptions catches everything which is likely a typo or usage
// error before any file or network activity starts.
func (t *flowlens) ValidateCommandLineOptions() error {
	cfg := t.cfg

	switch cfg.fwType {
	case fwHuawei, fwFortigate:
	case "":
		return fmt.Errorf("--fw is required: '%s' or '%s'", fwHuawei, fwFortigate)
	default:
		return fmt.Errorf("--fw must be '%s' or '%s', not '%s'",
			fwHuawei, fwFortigate, cfg.fwType)
	}

	if len(cfg.tenant) == 0 {
		return fmt.Errorf("--tenant is required")
	}
	if len(cfg.inputFile) == 0 {
		return fmt.Errorf("--file is required")
	}

	if cfg.concurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1, not %d", cfg.concurrency)
	}
	if cfg.dnsTimeout <= 0 {
		return fmt.Errorf("--timeout must be positive, not %s", cfg.dnsTimeout)
	}
	if len(cfg.outputDir) == 0 {
		return fmt.Errorf("--output-dir must not be empty")
	}

	return nil
}
