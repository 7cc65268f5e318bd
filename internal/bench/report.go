package bench

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints top-line metrics for a set of results.
func RenderSummary(w io.Writer, results []Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No cases run.")
		return err
	}
	metrics := Summarize(results)
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Cases: %d\n", metrics.CaseCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Top-1: %.1f%%\n", metrics.Top1Rate*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Top-3: %.1f%%\n", metrics.Top3Rate*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg latency: %.2f ms\n", metrics.AvgLatencyMs); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "P95 latency: %.2f ms\n", metrics.P95LatencyMs); err != nil {
		return err
	}

	latencies := make([]float64, len(results))
	for i, r := range results {
		latencies[i] = r.LatencyMs
	}
	if _, err := fmt.Fprintf(w, "Latency trend: %s\n", Sparkline(MovingAverage(latencies, 5))); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderWorstWords prints the n lowest-confidence results, worst first.
// Words absent from the returned candidates (Rank == 0) sort first.
func RenderWorstWords(w io.Writer, results []Result, n int) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No cases run.")
		return err
	}
	sorted := append([]Result(nil), results...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rank == 0 || sorted[j].Rank == 0 {
			return sorted[i].Rank == 0 && sorted[j].Rank != 0
		}
		return sorted[i].Confidence < sorted[j].Confidence
	})
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}

	if _, err := fmt.Fprintln(w, "Worst Words by Confidence"); err != nil {
		return err
	}
	headers := []string{"Word", "Rank", "Confidence", "Latency (ms)"}
	rows := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		rank := "not found"
		if r.Rank > 0 {
			rank = fmt.Sprintf("%d", r.Rank)
		}
		rows = append(rows, []string{
			r.Word,
			rank,
			fmt.Sprintf("%.3f", r.Confidence),
			fmt.Sprintf("%.2f", r.LatencyMs),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderSlowestCases prints the n slowest results, slowest first.
func RenderSlowestCases(w io.Writer, results []Result, n int) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No cases run.")
		return err
	}
	sorted := append([]Result(nil), results...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LatencyMs > sorted[j].LatencyMs })
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}

	if _, err := fmt.Fprintln(w, "Slowest Cases"); err != nil {
		return err
	}
	headers := []string{"Word", "Latency (ms)"}
	rows := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, []string{r.Word, fmt.Sprintf("%.2f", r.LatencyMs)})
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := utf8.RuneCountInString(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

// TerminalWidth reports the current stdout terminal width, or a fallback of
// 80 columns if it cannot be determined.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
