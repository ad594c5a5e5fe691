package resxgen

import (
	"errors"
	"fmt"
)

// Severity 诊断级别
type Severity int

const (
	SeverityWarning Severity = iota + 1 // 建议，不阻止生成
	SeverityError                       // 致命，终止生成
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Code 诊断代码
type Code string

const (
	// 校验错误（致命）
	CodeEmptyName           Code = "RG001"
	CodeDuplicateIdentifier Code = "RG002"
	CodeClassNameConflict   Code = "RG003"
	CodeInvalidClassName    Code = "RG004"
	CodeUnsupportedLanguage Code = "RG005"

	// 建议（警告）
	CodeMalformedPlaceholder   Code = "RG101"
	CodePlaceholderGap         Code = "RG102"
	CodeConstantFormatConflict Code = "RG103"
	CodeFormatSpecIgnored      Code = "RG104"
)

// Diagnostic 生成过程中的一条诊断信息
type Diagnostic struct {
	Severity Severity
	Code     Code
	Resource string // 相关的资源名，可为空
	Message  string
}

func (d Diagnostic) String() string {
	if d.Resource == "" {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s %s: %s: %s", d.Severity, d.Code, d.Resource, d.Message)
}

func warning(code Code, resource, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Resource: resource,
		Message:  fmt.Sprintf(format, args...),
	}
}

// ErrValidation 所有校验错误都匹配该错误
var ErrValidation = errors.New("校验失败")

// ValidationError 致命的校验错误
type ValidationError struct {
	Code     Code
	Resource string
	Msg      string
}

func (e *ValidationError) Error() string {
	if e.Resource == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Resource, e.Msg)
}

// Is 使 errors.Is(err, ErrValidation) 成立
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Diagnostic 转换为诊断信息
func (e *ValidationError) Diagnostic() Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Code:     e.Code,
		Resource: e.Resource,
		Message:  e.Msg,
	}
}

func validationError(code Code, resource, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:     code,
		Resource: resource,
		Msg:      fmt.Sprintf(format, args...),
	}
}

// HasWarnings 是否包含警告
func HasWarnings(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityWarning {
			return true
		}
	}
	return false
}
