package metrics

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"

	"proxytray/internal/codec"
	"proxytray/internal/factory"
)

// Collector tallies link decoding outcomes for the import report.
type Collector struct {
	mu sync.Mutex

	decoded     map[string]int // by protocol
	errorCounts map[string]int // by failure kind
	totalOK     int
	totalErrors int
}

func New() *Collector {
	return &Collector{
		decoded:     make(map[string]int),
		errorCounts: make(map[string]int),
	}
}

func (c *Collector) RecordSuccess(protocol string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.decoded[protocol]++
	c.totalOK++
}

func (c *Collector) RecordFailure(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.totalErrors++
	c.errorCounts[failureKind(err)]++
}

func failureKind(err error) string {
	switch {
	case err == nil:
		return "Undecodable"
	case errors.Is(err, factory.ErrUnrecognizedScheme):
		return "Unknown Scheme"
	case errors.Is(err, factory.ErrUnsupportedProtocol):
		return "Unsupported Dialect"
	case errors.Is(err, codec.ErrInvalidAuthority):
		return "Bad Host/Port"
	case errors.Is(err, factory.ErrMalformedURI):
		return "Malformed Link"
	}
	return "Unknown"
}

func (c *Collector) Totals() (ok, failed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalOK, c.totalErrors
}

func (c *Collector) PrintReport(out io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\n📊 \033[1mIMPORT REPORT\033[0m")
	fmt.Fprintln(w, "────────────────────────────────────────")

	fmt.Fprintln(w, "\033[1;36m[ DECODED ]\033[0m")
	fmt.Fprintf(w, "  Total:\t%d\n", c.totalOK)
	for _, k := range sortedKeys(c.decoded) {
		fmt.Fprintf(w, "  %s:\t%d\n", k, c.decoded[k])
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "\033[1;36m[ REJECTED ]\033[0m")
	fmt.Fprintf(w, "  Total:\t%d\n", c.totalErrors)
	for _, k := range sortedKeys(c.errorCounts) {
		fmt.Fprintf(w, "  %s:\t%d\n", k, c.errorCounts[k])
	}

	w.Flush()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
