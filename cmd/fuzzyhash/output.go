package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// isTerminal reports whether writer is an interactive terminal.
func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return printer.Sprintf("%d B", n)
	}
	value := float64(n)
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB"}
	i := -1
	for value >= unit && i < len(suffixes)-1 {
		value /= unit
		i++
	}
	return printer.Sprintf("%.1f %s", value, suffixes[i])
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// digestLine renders one result in the layout ssdeep uses.
func digestLine(digest, path string) string {
	return fmt.Sprintf("%s,%q", digest, path)
}

const digestHeader = "ssdeep,1.1--blocksize:hash:hash,filename"

func writeTSV(out io.Writer, rows [][]string) {
	for _, row := range rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
}
