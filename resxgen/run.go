package resxgen

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"
)

// RunOptions 批量运行选项
type RunOptions struct {
	Jobs             []*Job
	Verbose          bool
	Async            bool     // 并行执行任务
	WarningsAsErrors bool     // 有警告的任务视为失败，不写入文件
	Reporter         Reporter // 为 nil 时输出到 stderr
}

// RunStats 运行统计信息
type RunStats struct {
	GenerateDuration time.Duration // 生成耗时
	TotalDuration    time.Duration // 总耗时
	JobCount         int           // 任务数量
	FileCount        int           // 写入文件数量
	UnchangedCount   int           // 内容未变化、未写入的数量
	WarningCount     int           // 警告数量
	ErrorCount       int           // 失败任务数量
	Codes            map[Code]int  // 按诊断代码统计
}

// CodeSummary 按代码排序输出诊断统计，如 "RG002=1, RG102=2"
func (s *RunStats) CodeSummary() string {
	codes := slices.Sorted(maps.Keys(s.Codes))
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, fmt.Sprintf("%s=%d", code, s.Codes[code]))
	}
	return strings.Join(parts, ", ")
}

// RunWithOptions 带选项运行
func RunWithOptions(ctx context.Context, opts *RunOptions) error {
	_, err := RunWithOptionsAndStats(ctx, opts)
	return err
}

// RunWithOptionsAndStats 带选项运行并返回统计信息
// 每个任务相互独立，一个任务失败不影响其他任务
func RunWithOptionsAndStats(ctx context.Context, opts *RunOptions) (*RunStats, error) {
	totalStart := time.Now()

	if len(opts.Jobs) == 0 {
		return nil, fmt.Errorf("没有需要执行的生成任务")
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = NewPrintReporter(os.Stderr)
	}

	stats := &RunStats{JobCount: len(opts.Jobs), Codes: make(map[Code]int)}

	// jobResult 存储单个任务的执行结果
	type jobResult struct {
		result *Result
		err    error
	}
	results := make([]jobResult, len(opts.Jobs))

	executeJob := func(i int) {
		job := opts.Jobs[i]
		if opts.Verbose {
			fmt.Printf("[resxgen] 处理 %s (%s) -> %s\n", job.ResourceFile, job.Config.Language, job.ClassName)
		}
		nt1 := time.Now()
		result, err := Generate(ctx, job, WithWarningsAsErrors(opts.WarningsAsErrors))
		if opts.Verbose {
			fmt.Printf("[resxgen] 完成 %s (耗时: %v)\n", job.ResourceFile, time.Since(nt1))
		}
		results[i] = jobResult{result: result, err: err}
	}

	generateStart := time.Now()
	if opts.Async {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := range opts.Jobs {
			g.Go(func() error {
				executeJob(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range opts.Jobs {
			executeJob(i)
		}
	}
	stats.GenerateDuration = time.Since(generateStart)

	// 按任务顺序汇总，输出稳定
	var allErrors []error
	for i, item := range results {
		job := opts.Jobs[i]

		if item.result != nil {
			for _, d := range item.result.Diagnostics {
				if d.Severity == SeverityWarning {
					stats.WarningCount++
				}
				stats.Codes[d.Code]++
				reporter.Report(job, d)
			}
			if opts.Verbose && item.result.Model != nil {
				fmt.Printf("[resxgen] %s 的资源模型:\n%s", job.ResourceFile, spew.Sdump(item.result.Model.Resources))
			}
		}

		if item.err != nil {
			stats.ErrorCount++
			validation := ValidationErrors(item.err)
			for _, ve := range validation {
				stats.Codes[ve.Code]++
				reporter.Report(job, ve.Diagnostic())
			}
			if len(validation) == 0 && !errors.Is(item.err, ErrWarnings) {
				allErrors = append(allErrors, item.err)
			}
			continue
		}

		if item.result.Written {
			stats.FileCount++
			fmt.Printf("生成文件: %s\n", item.result.Output)
		} else {
			stats.UnchangedCount++
			if opts.Verbose {
				fmt.Printf("文件未变化: %s\n", item.result.Output)
			}
		}
	}

	stats.TotalDuration = time.Since(totalStart)

	if stats.ErrorCount > 0 {
		for _, e := range allErrors {
			fmt.Printf("错误: %v\n", e)
		}
		return stats, fmt.Errorf("生成过程中出现 %d 个错误", stats.ErrorCount)
	}

	return stats, nil
}
