// test/benchmarks/helpers.go
package benchmarks

import (
	"fmt"
	"strings"
)

// buildCSV returns a parts CSV with rows data lines. Every fourth row reuses
// an earlier (name, price) pair so imports exercise both create and update.
func buildCSV(rows int) string {
	var sb strings.Builder
	sb.WriteString("name,description,price,quantity\n")
	for i := 0; i < rows; i++ {
		n := i
		if i%4 == 3 {
			n = i - 3
		}
		fmt.Fprintf(&sb, "Part %05d,\"Bench part, lot %d\",%d.%02d,%d\n", n, i, 5+n%200, n%100, i%25)
	}
	return sb.String()
}
