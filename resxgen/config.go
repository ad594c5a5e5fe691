package resxgen

import (
	"github.com/donutnomad/resxgen/lang"
)

// Config 生成策略，生成过程中不会被修改
type Config struct {
	// EmitFormatMethods 含占位符的资源生成带位置参数的格式化方法
	EmitFormatMethods bool
	// AsConstants 资源生成为保存资源键的常量
	AsConstants bool
	// OmitLookupHelper 不生成共享查找方法，访问器直接内联资源值
	OmitLookupHelper bool
	// Language 目标语言选择器，如 "C#"、"VB"、"Go"
	Language string
}

// Dialect 解析目标语言
func (c Config) Dialect() (*lang.Dialect, error) {
	d, ok := lang.Lookup(c.Language)
	if !ok {
		return nil, validationError(CodeUnsupportedLanguage, "", "不支持的目标语言 %q（支持: %v）", c.Language, lang.Names())
	}
	return d, nil
}
