package ui

import (
	"fmt"
	"strings"
)

// Table creates a formatted table for output
type Table struct {
	headers  []string
	rows     [][]string
	widths   []int
	maxWidth int // Maximum total table width
}

// NewTable creates a new table
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runeLen(h)
	}
	return &Table{
		headers:  headers,
		rows:     [][]string{},
		widths:   widths,
		maxWidth: 120, // Default max width
	}
}

// SetMaxWidth sets the maximum table width
func (t *Table) SetMaxWidth(width int) {
	t.maxWidth = width
}

// AddRow adds a row to the table
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(values) {
			row[i] = values[i]
			if runeLen(values[i]) > t.widths[i] {
				t.widths[i] = runeLen(values[i])
			}
		} else {
			row[i] = ""
		}
	}
	t.rows = append(t.rows, row)
}

// Render renders the table to stdout
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	// Calculate column widths with padding
	widths := make([]int, len(t.headers))
	totalWidth := 0
	for i, h := range t.headers {
		widths[i] = runeLen(h)
		for _, row := range t.rows {
			if i < len(row) && runeLen(row[i]) > widths[i] {
				widths[i] = runeLen(row[i])
			}
		}
		widths[i] += 2              // Padding
		totalWidth += widths[i] + 1 // +1 for separator
	}

	// Adjust if too wide
	if totalWidth > t.maxWidth {
		excess := totalWidth - t.maxWidth
		// Reduce largest columns first
		for excess > 0 {
			maxIdx := 0
			for i := 1; i < len(widths); i++ {
				if widths[i] > widths[maxIdx] {
					maxIdx = i
				}
			}
			if widths[maxIdx] > 10 {
				widths[maxIdx]--
				excess--
			} else {
				break
			}
		}
	}

	// Print header
	fmt.Print("┌")
	for i, w := range widths {
		fmt.Print(strings.Repeat("─", w))
		if i < len(widths)-1 {
			fmt.Print("┬")
		}
	}
	fmt.Println("┐")

	fmt.Print("│")
	for i, h := range t.headers {
		fmt.Printf(" %s│", pad(Truncate(h, widths[i]-2), widths[i]-2))
	}
	fmt.Println()

	// Print separator
	fmt.Print("├")
	for i, w := range widths {
		fmt.Print(strings.Repeat("─", w))
		if i < len(widths)-1 {
			fmt.Print("┼")
		}
	}
	fmt.Println("┤")

	// Print rows
	for _, row := range t.rows {
		fmt.Print("│")
		for i := range t.headers {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			fmt.Printf(" %s│", pad(Truncate(val, widths[i]-2), widths[i]-2))
		}
		fmt.Println()
	}

	// Print footer
	fmt.Print("└")
	for i, w := range widths {
		fmt.Print(strings.Repeat("─", w))
		if i < len(widths)-1 {
			fmt.Print("┴")
		}
	}
	fmt.Println("┘")
}

// CompactTable creates a simpler table without borders
func CompactTable(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	// Calculate widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runeLen(h)
		for _, row := range rows {
			if i < len(row) && runeLen(row[i]) > widths[i] {
				widths[i] = runeLen(row[i])
			}
		}
		widths[i] += 2
	}

	// Print header
	for i, h := range headers {
		fmt.Print(pad(h, widths[i]))
		if i < len(headers)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()

	// Print separator
	for i, w := range widths {
		fmt.Print(strings.Repeat("─", w))
		if i < len(widths)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()

	// Print rows
	for _, row := range rows {
		for i := range headers {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			fmt.Print(pad(val, widths[i]))
			if i < len(headers)-1 {
				fmt.Print("  ")
			}
		}
		fmt.Println()
	}
}

// Truncate shortens a string to max runes with an ellipsis. Filenames
// here are often CJK, so slicing must happen at rune boundaries.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// pad left-aligns s inside width columns, counting runes
func pad(s string, width int) string {
	n := width - runeLen(s)
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}

func runeLen(s string) int {
	return len([]rune(s))
}
