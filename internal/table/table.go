// Package table 输出按显示宽度对齐的文本表格
package table

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table 文本表格，列宽按终端显示宽度计算（中文等宽字符占两列）
type Table struct {
	header []string
	rows   [][]string
	sep    string
}

// New 创建表格
func New(header ...string) *Table {
	return &Table{header: header, sep: "  "}
}

// Append 添加一行，多余的列被忽略，不足的列补空
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.header))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len 行数（不含表头）
func (t *Table) Len() int {
	return len(t.rows)
}

// String 渲染表格，每行末尾没有多余空格
func (t *Table) String() string {
	widths := make([]int, len(t.header))
	for _, row := range append([][]string{t.header}, t.rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		var line strings.Builder
		for i, cell := range row {
			if i > 0 {
				line.WriteString(t.sep)
			}
			if i == len(row)-1 {
				line.WriteString(cell)
			} else {
				line.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteByte('\n')
	}

	writeRow(t.header)
	rule := make([]string, len(t.header))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	writeRow(rule)
	for _, row := range t.rows {
		writeRow(row)
	}
	return sb.String()
}

// WriteTo 将表格写入 w
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String())
	return int64(n), err
}
