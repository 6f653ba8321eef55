// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/scholar-digest/pkg/types"
)

// FormatTable writes a ranked listing of pubs to w.
func FormatTable(w io.Writer, pubs []types.Publication) {
	if len(pubs) == 0 {
		fmt.Fprintln(w, "No matching papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-4s  %-60s  %s\n", "#", "Year", "Title", "Summary")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, p := range pubs {
		fmt.Fprintf(w, "%-4d  %-4d  %-60s  %s\n",
			i+1, p.Year, truncate(p.Title, 60), truncate(p.Summary, 40))
	}

	fmt.Fprintf(w, "\n%d publications\n", len(pubs))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}
