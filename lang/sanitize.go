package lang

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sanitize 将资源名转换为目标语言中的合法标识符
//   - 非法字符替换为 '_'
//   - 结果以非法首字符开头或与保留字冲突时，加前缀 '_'
//
// 空字符串返回空字符串；唯一性由调用方保证
func Sanitize(raw string, d *Dialect) string {
	if raw == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(raw) + 1)
	for _, r := range raw {
		if d.IsIdentPart(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	ident := sb.String()

	first, _ := utf8.DecodeRuneInString(ident)
	if !d.IsIdentStart(first) || d.IsReserved(ident) {
		ident = "_" + ident
	}
	return ident
}

// 以下为通用的字符分类

// isLetterStart C# / VB 的标识符首字符: 字母、字母数字(Nl)、下划线
func isLetterStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

// isLetterPart C# / VB 的标识符后续字符
func isLetterPart(r rune) bool {
	return isLetterStart(r) ||
		unicode.Is(unicode.Nd, r) ||
		unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Mc, r) ||
		unicode.Is(unicode.Pc, r) ||
		unicode.Is(unicode.Cf, r)
}

// escapeXML 转义 XML 文档注释中的特殊字符
func escapeXML(s string) string {
	return xmlReplacer.Replace(s)
}

var xmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
