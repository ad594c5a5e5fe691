package utils

import (
	"strings"
	"unicode"
)

// commonInitialisms 按一个单词处理的缩略词
var commonInitialisms = []string{
	"API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS",
	"ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP",
	"SSH", "TLS", "TTL", "UID", "UI", "UUID", "URI", "URL", "UTF8", "VM",
	"XML", "XSRF", "XSS",
}

// initialismReplacer API -> Api, HTTP -> Http
var initialismReplacer = func() *strings.Replacer {
	args := make([]string, 0, len(commonInitialisms)*2)
	for _, initialism := range commonInitialisms {
		args = append(args, initialism, initialism[:1]+strings.ToLower(initialism[1:]))
	}
	return strings.NewReplacer(args...)
}()

// ToSnakeCase 将容器名转换为蛇形命名，用作 Go 输出文件名
//
//	TestStrings -> test_strings
//	HTTPErrors  -> http_errors
//	SHA256Hash  -> sha256_hash
func ToSnakeCase(name string) string {
	runes := []rune(initialismReplacer.Replace(name))

	var sb strings.Builder
	sb.Grow(len(name) + 4)
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			sb.WriteRune(r)
			continue
		}
		// 小写或数字之后的大写字母开始一个新单词；连续大写时，后面跟小写的那个开始新单词
		if i > 0 && runes[i-1] != '_' {
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !unicode.IsUpper(runes[i-1]) || nextLower {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}
