package config

import (
	"fmt"
	"strings"

	"github.com/donutnomad/resxgen/lang"
)

// FormatHelpText 生成任务参数的帮助文本
func FormatHelpText(defs []ParamDef) string {
	var sb strings.Builder

	sb.WriteString("  任务参数:\n")
	for _, param := range defs {
		required := ""
		if param.Required {
			required = " (必填)"
		}

		defaultVal := ""
		if param.Default != "" {
			defaultVal = fmt.Sprintf(" [默认: %s]", param.Default)
		}

		sb.WriteString(fmt.Sprintf("    -%s%s%s - %s\n", param.Name, required, defaultVal, param.Description))
	}

	sb.WriteString("\n  支持的语言:\n")
	for _, d := range lang.All() {
		sb.WriteString(fmt.Sprintf("    %s (%s) -> %s\n", d.Name, strings.Join(d.Aliases, ", "), d.FileName))
	}

	return sb.String()
}
