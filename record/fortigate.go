package record

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
)

// Fortigate traffic logs are key=value lines. Only the four fields of interest are
// extracted; they always occur in this relative order with arbitrary other fields in
// between.
var fortigatePattern = regexp.MustCompile(
	`srcip=(?P<srcip>[^ ]+)\s+` +
		`.*?` +
		`dstip=(?P<dstip>[^ ]+)\s+` +
		`.*?` +
		`dstport=(?P<dstport>\d+)\s+` +
		`.*?` +
		`proto=(?P<proto>\d+)`)

// ParseFortigate scans a Fortigate text log line by line. Lines which do not match the
// traffic pattern (console noise, other log types) are silently skipped. An input with
// no matching lines at all is an error as it almost certainly means the wrong file or
// the wrong --fw type was given.
func ParseFortigate(r io.Reader) ([]Traffic, error) {
	var recs []Traffic

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // Some UTM lines get long
	for scanner.Scan() {
		m := fortigatePattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		recs = append(recs, Traffic{
			SrcAddr:  m[fortigatePattern.SubexpIndex("srcip")],
			DstAddr:  m[fortigatePattern.SubexpIndex("dstip")],
			DstPort:  m[fortigatePattern.SubexpIndex("dstport")],
			Protocol: m[fortigatePattern.SubexpIndex("proto")],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading Fortigate log: %w", err)
	}

	if len(recs) == 0 {
		return nil, fmt.Errorf("no Fortigate traffic records found in input")
	}

	return recs, nil
}
