package config

import (
	"flag"
	"reflect"
	"strings"

	"github.com/donutnomad/resxgen/resxgen"
)

// Options 单个生成任务的参数
type Options struct {
	File              string `param:"name=file,required=true,description=资源表路径（.resx / .yaml / .json）"`
	Name              string `param:"name=name,required=false,default=,description=运行时资源包标识（默认与 class 相同）"`
	Class             string `param:"name=class,required=true,description=容器完整名称，如 App.Resources.Strings"`
	Output            string `param:"name=output,required=false,default=,description=输出文件路径（默认输出到资源表所在目录）"`
	Lang              string `param:"name=lang,required=false,default=C#,description=目标语言: C# / VB / Go"`
	EmitFormatMethods bool   `param:"name=emit-format-methods,required=false,default=false,description=含占位符的资源生成带参数的格式化方法"`
	AsConstants       bool   `param:"name=as-constants,required=false,default=false,description=资源生成为保存资源键的常量"`
	OmitLookupHelper  bool   `param:"name=omit-lookup-helper,required=false,default=false,description=不生成共享查找方法，访问器内联资源值"`
}

// OptionDefs 任务参数定义
var OptionDefs = ParseParamsFromStruct(Options{})

// Job 转换为生成任务
func (o *Options) Job() *resxgen.Job {
	return &resxgen.Job{
		ResourceFile: o.File,
		ResourceName: o.Name,
		ClassName:    o.Class,
		Output:       o.Output,
		Config: resxgen.Config{
			EmitFormatMethods: o.EmitFormatMethods,
			AsConstants:       o.AsConstants,
			OmitLookupHelper:  o.OmitLookupHelper,
			Language:          o.Lang,
		},
	}
}

// FlagSet 将参数定义绑定到 flag.FlagSet
type FlagSet struct {
	fs      *flag.FlagSet
	strings map[string]*string
	bools   map[string]*bool
}

// BindFlags 为每个参数定义注册一个命令行参数
// 默认值不注册到 flag 上，由 ApplyParams 统一处理
func BindFlags(fs *flag.FlagSet, defs []ParamDef) *FlagSet {
	f := &FlagSet{
		fs:      fs,
		strings: make(map[string]*string),
		bools:   make(map[string]*bool),
	}
	for _, def := range defs {
		usage := def.Description
		if def.Default != "" {
			usage += "（默认: " + def.Default + "）"
		}
		if def.Kind == reflect.Bool {
			f.bools[def.Name] = fs.Bool(def.Name, false, usage)
		} else {
			f.strings[def.Name] = fs.String(def.Name, "", usage)
		}
	}
	return f
}

// Values 返回命令行中显式给出的参数
func (f *FlagSet) Values() map[string]any {
	values := make(map[string]any)
	f.fs.Visit(func(fl *flag.Flag) {
		if p, ok := f.strings[fl.Name]; ok {
			values[fl.Name] = strings.TrimSpace(*p)
		} else if p, ok := f.bools[fl.Name]; ok {
			values[fl.Name] = *p
		}
	})
	return values
}

// Options 解析命令行参数为 Options
func (f *FlagSet) Options() (*Options, error) {
	var opts Options
	if err := ApplyParams(f.Values(), &opts, OptionDefs); err != nil {
		return nil, err
	}
	return &opts, nil
}
