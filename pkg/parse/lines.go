package parse

import "strings"

const (
	LabelParameters = "参数"
	LabelResponse   = "响应数据"
	LabelEventData  = "事件数据"
	LabelReportData = "上报数据"

	headerFieldName = "字段名"
	headerParamName = "参数名"
	tocMarker       = "目录"

	// nestedFieldsPhrase follows a backtick-quoted field name in the sentence that
	// introduces an object field's own table ("`sender` 字段的内容如下：").
	nestedFieldsPhrase = "内容如下"
	nestedLookahead    = 30
)

func splitLines(content string) []string {
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

func sectionHeading(label string) string {
	return "### " + label
}

// isEntryHeading reports whether a line opens a new top-level entry ("## ...").
func isEntryHeading(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "## ")
}

// isAnyHeading reports whether a line is a second-level or deeper heading.
func isAnyHeading(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "##")
}

func isTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

func isSeparatorRow(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "|") && strings.Contains(t, "-") && strings.Trim(t, "|-: \t") == ""
}

// findLine returns the index of the first line at or after start that matches. The scan
// gives up when stop matches a line first or the input ends.
func findLine(lines []string, start int, match, stop func(string) bool) (int, bool) {
	for i := start; i < len(lines); i++ {
		if match(lines[i]) {
			return i, true
		}
		if stop != nil && stop(lines[i]) {
			return 0, false
		}
	}
	return 0, false
}

// tableBody returns the indexes of the data rows of the table whose header row sits at
// header. The header row is always skipped, the separator row when present.
func tableBody(lines []string, header int) []int {
	i := header + 1
	if i < len(lines) && isSeparatorRow(lines[i]) {
		i++
	}
	var rows []int
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || !strings.HasPrefix(line, "|") {
			break
		}
		rows = append(rows, i)
	}
	return rows
}
