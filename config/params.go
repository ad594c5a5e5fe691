// Package config 描述生成任务的参数，并把命令行参数或批处理文件转换为 resxgen.Job
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// ParamDef 参数的元信息
type ParamDef struct {
	Name        string       // 参数名称
	Required    bool         // 是否必填
	Default     string       // 默认值（如果不是必填）
	Description string       // 参数描述
	Kind        reflect.Kind // 字段类型
}

// ParseParamsFromStruct 从结构体的tag解析参数定义
// 支持的tag: name, required, default, description
//
// 示例:
//
//	type Options struct {
//	    File  string `param:"name=file,required=true,description=资源表路径"`
//	    Lang  string `param:"name=lang,required=false,default=C#,description=目标语言"`
//	}
func ParseParamsFromStruct(v any) []ParamDef {
	typ := reflect.TypeOf(v)
	if typ == nil {
		return nil
	}

	// 如果是指针,解引用
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var params []ParamDef
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tag := field.Tag.Get("param")
		if tag == "" {
			continue
		}

		paramDef := parseParamTag(tag)
		if paramDef.Name != "" {
			paramDef.Kind = field.Type.Kind()
			params = append(params, paramDef)
		}
	}

	return params
}

// parseParamTag 解析 param tag 字符串
// 格式: name=xxx,required=true,default=xxx,description=xxx
func parseParamTag(tag string) ParamDef {
	var param ParamDef

	for key, value := range splitTag(tag) {
		switch key {
		case "name":
			param.Name = value
		case "required":
			param.Required = value == "true"
		case "default":
			param.Default = value
		case "description":
			param.Description = value
		}
	}

	return param
}

// splitTag 分割tag字符串为键值对
// 格式: key1=value1,key2=value2,...
// '\' 转义下一个字节，用于在值中写入 ',' 或 '='
func splitTag(tag string) map[string]string {
	result := make(map[string]string)

	var key, value strings.Builder
	inKey := true
	escaped := false

	write := func(ch byte) {
		if inKey {
			key.WriteByte(ch)
		} else {
			value.WriteByte(ch)
		}
	}

	for i := 0; i < len(tag); i++ {
		ch := tag[i]

		if escaped {
			write(ch)
			escaped = false
			continue
		}

		switch {
		case ch == '\\':
			escaped = true
		case ch == '=' && inKey:
			inKey = false
		case ch == ',':
			if key.Len() > 0 {
				result[key.String()] = value.String()
			}
			key.Reset()
			value.Reset()
			inKey = true
		default:
			write(ch)
		}
	}

	// 保存最后一个键值对
	if key.Len() > 0 {
		result[key.String()] = value.String()
	}

	return result
}

// ApplyParams 将参数值写入目标结构体
// values: 参数名 -> 值，值可以是字符串或 YAML 中的标量
// target: 目标结构体（必须是非nil指针）
// paramDefs: 参数定义列表，用于应用默认值与检查必填项
func ApplyParams(values map[string]any, target any, paramDefs []ParamDef) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("目标必须是非 nil 指针")
	}
	val = val.Elem()
	typ := val.Type()
	if typ.Kind() != reflect.Struct {
		return fmt.Errorf("目标必须是结构体指针")
	}

	defMap := make(map[string]ParamDef, len(paramDefs))
	for _, def := range paramDefs {
		defMap[def.Name] = def
	}

	for name := range values {
		if _, ok := defMap[name]; !ok {
			return fmt.Errorf("未知参数 %q", name)
		}
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		tag := field.Tag.Get("param")
		if tag == "" {
			continue
		}
		name := parseParamTag(tag).Name
		def, ok := defMap[name]
		if !ok {
			continue
		}

		value, ok := values[name]
		if !ok || value == nil {
			if def.Required {
				return fmt.Errorf("缺少必填参数 %s", name)
			}
			value = def.Default
		}

		if err := setFieldValue(fieldVal, value); err != nil {
			return fmt.Errorf("参数 %s 的值 %v 无效: %w", name, value, err)
		}
	}

	return nil
}

// setFieldValue 设置字段值，支持 string, int, bool 等基本类型
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		s, err := cast.ToStringE(value)
		if err != nil {
			return err
		}
		field.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if value == "" {
			value = 0
		}
		n, err := cast.ToInt64E(value)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Bool:
		if value == "" {
			value = false
		}
		b, err := cast.ToBoolE(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("不支持的字段类型 %s", field.Kind())
	}
	return nil
}
