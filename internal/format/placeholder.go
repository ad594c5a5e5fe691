package format

import (
	"fmt"
	"strconv"
	"strings"
)

// maxIndex 占位符序号上限，与 .NET 复合格式保持一致
const maxIndex = 1_000_000

// Placeholder 复合格式字符串中的一个位置占位符
//
// 支持的写法: {0}、{0,10}、{0,-10}、{0:N2}、{0,10:N2}
type Placeholder struct {
	Index    int    // 参数序号
	Align    int    // 对齐宽度（负数表示左对齐）
	HasAlign bool   // 是否指定了对齐
	Format   string // 格式说明符（冒号之后的部分）
	Start    int    // 在原字符串中的起始字节偏移（含 '{'）
	End      int    // 结束字节偏移（不含，'}' 之后）
}

// SyntaxError 占位符语法错误
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("位置 %d: %s", e.Offset, e.Msg)
}

// Scan 扫描字符串中的位置占位符
// '{{' 和 '}}' 视为转义的花括号，不是占位符。
// 任何其他的花括号用法都返回 *SyntaxError。
func Scan(s string) ([]Placeholder, error) {
	var result []Placeholder

	for i := 0; i < len(s); {
		switch s[i] {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				i += 2
				continue
			}
			end := strings.IndexByte(s[i+1:], '}')
			if end < 0 {
				return nil, &SyntaxError{Offset: i, Msg: "未闭合的 '{'"}
			}
			ph, err := parseItem(s[i+1 : i+1+end])
			if err != nil {
				return nil, &SyntaxError{Offset: i, Msg: err.Error()}
			}
			ph.Start = i
			ph.End = i + end + 2
			result = append(result, ph)
			i = ph.End
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				i += 2
				continue
			}
			return nil, &SyntaxError{Offset: i, Msg: "多余的 '}'"}
		default:
			i++
		}
	}

	return result, nil
}

// parseItem 解析花括号内部: index[,align][:format]
func parseItem(body string) (Placeholder, error) {
	var ph Placeholder

	if strings.ContainsRune(body, '{') {
		return ph, fmt.Errorf("占位符 {%s} 中包含 '{'", body)
	}

	rest := body
	if idx := strings.IndexByte(rest, ':'); idx >= 0 {
		ph.Format = rest[idx+1:]
		rest = rest[:idx]
	}
	if idx := strings.IndexByte(rest, ','); idx >= 0 {
		align, err := strconv.Atoi(strings.TrimSpace(rest[idx+1:]))
		if err != nil {
			return ph, fmt.Errorf("无效的对齐宽度 {%s}", body)
		}
		ph.Align = align
		ph.HasAlign = true
		rest = rest[:idx]
	}

	if rest == "" || strings.TrimLeft(rest, "0123456789") != "" {
		return ph, fmt.Errorf("无效的占位符 {%s}", body)
	}
	index, err := strconv.Atoi(rest)
	if err != nil || index >= maxIndex {
		return ph, fmt.Errorf("占位符序号超出范围 {%s}", body)
	}
	ph.Index = index

	return ph, nil
}

// ArgCount 返回所需参数个数，即最大序号 + 1
func ArgCount(phs []Placeholder) int {
	n := 0
	for _, ph := range phs {
		if ph.Index+1 > n {
			n = ph.Index + 1
		}
	}
	return n
}

// Missing 返回 [0, ArgCount) 中未被引用的序号
func Missing(phs []Placeholder) []int {
	n := ArgCount(phs)
	used := make([]bool, n)
	for _, ph := range phs {
		used[ph.Index] = true
	}
	var missing []int
	for i, ok := range used {
		if !ok {
			missing = append(missing, i)
		}
	}
	return missing
}
