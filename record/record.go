package record

// Traffic is one firewall traffic record. The first four fields come from the input
// parser; the remaining fields are attached by the enrichment pipeline and stay empty
// when no attribution or hostname could be found. Identity is positional - the parser
// and pipeline never deduplicate, that is Summarize's job at the very end.
type Traffic struct {
	SrcAddr  string
	DstAddr  string
	DstPort  string
	Protocol string

	SrcPrefix      string // Most specific known network containing SrcAddr
	SrcDescription string // Registry metadata for SrcPrefix
	DstHost        string // Reverse-DNS outcome for DstAddr
}

// Column names as they appear in a Huawei USG policy export and in the summary
// output. Order matters: it defines the output column order and the first column is
// the sort key.
var NeededColumns = []string{
	"Source Address",
	"Destination Address",
	"Destination Port",
	"Protocol",
}
