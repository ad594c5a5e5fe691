package resxgen

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/donutnomad/resxgen/internal/resx"
	"github.com/donutnomad/resxgen/internal/utils"
	"github.com/samber/lo"
)

// Job 一次生成任务: 一个资源表 -> 一个源文件
type Job struct {
	ResourceFile string // 资源表路径
	ResourceName string // 运行时资源包标识，为空时使用 ClassName
	ClassName    string // 容器完整名称，如 Microsoft.DotNet.TestStrings
	Output       string // 输出路径，为空时输出到资源表所在目录
	Config       Config
}

// OutputPath 计算输出路径
func (j *Job) OutputPath(m *Model) (string, error) {
	if j.Output != "" {
		return j.Output, nil
	}
	name, err := m.Dialect.OutputFileName(m.ClassName)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(j.ResourceFile), name), nil
}

// Result 单个任务的生成结果
type Result struct {
	Job         *Job
	Model       *Model
	Output      string // 输出路径
	Source      []byte // 生成的源码
	Diagnostics []Diagnostic
	Written     bool // 是否写入了文件（内容未变化时不写入）
}

// ErrWarnings 警告视为错误时返回
var ErrWarnings = errors.New("存在警告")

// GenerateOption 生成选项
type GenerateOption func(*generateConfig)

type generateConfig struct {
	warningsAsErrors bool
}

// WithWarningsAsErrors 有警告时不写入文件并返回 ErrWarnings
func WithWarningsAsErrors(v bool) GenerateOption {
	return func(c *generateConfig) {
		c.warningsAsErrors = v
	}
}

// Render 读取资源表并生成源码，不写文件
// 出错时仍返回已收集到诊断信息的 Result
func Render(ctx context.Context, job *Job) (*Result, error) {
	result := &Result{Job: job}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	d, err := job.Config.Dialect()
	if err != nil {
		return result, err
	}

	items, err := resx.Load(job.ResourceFile)
	if err != nil {
		return result, err
	}
	entries := lo.Map(items, func(item resx.Entry, _ int) Entry {
		return Entry(item)
	})

	model, diags, err := Build(entries, job.ResourceName, job.ClassName, d)
	result.Diagnostics = append(result.Diagnostics, diags...)
	if err != nil {
		return result, fmt.Errorf("校验资源表 %s 失败: %w", job.ResourceFile, err)
	}
	result.Model = model

	src, emitDiags, err := Emit(model, job.Config)
	result.Diagnostics = append(result.Diagnostics, emitDiags...)
	if err != nil {
		return result, fmt.Errorf("生成 %s 失败: %w", job.ResourceFile, err)
	}
	result.Source = src

	result.Output, err = job.OutputPath(model)
	if err != nil {
		return result, err
	}

	return result, nil
}

// Generate 读取资源表、生成源码并原子写入输出文件
// 出现致命错误时不会写入，已存在的输出文件保持不变
func Generate(ctx context.Context, job *Job, opts ...GenerateOption) (*Result, error) {
	var cfg generateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	result, err := Render(ctx, job)
	if err != nil {
		return result, err
	}

	if cfg.warningsAsErrors && HasWarnings(result.Diagnostics) {
		return result, fmt.Errorf("%s: %w", job.ResourceFile, ErrWarnings)
	}

	if utils.FileUnchanged(result.Output, result.Source) {
		return result, nil
	}
	if err := utils.WriteFileAtomic(result.Output, result.Source); err != nil {
		return result, fmt.Errorf("写入文件 %s 失败: %w", result.Output, err)
	}
	result.Written = true

	return result, nil
}

// ValidationErrors 展开 err 中包含的全部校验错误
func ValidationErrors(err error) []*ValidationError {
	if err == nil {
		return nil
	}

	switch e := err.(type) {
	case *ValidationError:
		return []*ValidationError{e}
	case interface{ Unwrap() []error }:
		var result []*ValidationError
		for _, inner := range e.Unwrap() {
			result = append(result, ValidationErrors(inner)...)
		}
		return result
	}

	return ValidationErrors(errors.Unwrap(err))
}
