package app

import (
	"fmt"
	"io"
	"strings"
)

const bannerWidth = 74

var bannerRule = strings.Repeat("=", bannerWidth)

// printBanner frames a section title in the console report.
func printBanner(w io.Writer, title string) {
	fmt.Fprintln(w, bannerRule)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, bannerRule)
}
