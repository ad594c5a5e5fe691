package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/donutnomad/resxgen/config"
	"github.com/donutnomad/resxgen/internal/table"
	"github.com/donutnomad/resxgen/resxgen"
	"github.com/samber/lo"
)

// defaultBatchFile 未指定任务参数时读取的批处理文件
const defaultBatchFile = "resxgen.yaml"

var (
	verbose    = flag.Bool("v", false, "详细输出")
	help       = flag.Bool("h", false, "显示帮助信息")
	async      = flag.Bool("async", true, "并行执行任务（默认 true）")
	werror     = flag.Bool("werror", false, "有警告的任务视为失败，不写入文件")
	configFile = flag.String("config", "", "批处理文件路径（默认 "+defaultBatchFile+"）")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	args := flag.Args()

	// 默认命令是 gen
	if len(args) == 0 {
		runGen(nil)
		return
	}

	cmd := args[0]
	switch cmd {
	case "gen":
		runGen(args[1:])
	case "check":
		runCheck(args[1:])
	case "list":
		runList(args[1:])
	case "dev":
		runDev(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "错误: 未知命令 %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
}

// loadJobs 解析子命令的任务参数
// 没有给出任何任务参数时读取批处理文件
func loadJobs(name string, args []string) []*resxgen.Job {
	fset := flag.NewFlagSet(name, flag.ExitOnError)
	flags := config.BindFlags(fset, config.OptionDefs)
	_ = fset.Parse(args)

	if len(flags.Values()) > 0 {
		opts, err := flags.Options()
		if err != nil {
			fmt.Fprintf(os.Stderr, "错误: %v\n", err)
			os.Exit(2)
		}
		return []*resxgen.Job{opts.Job()}
	}

	path := *configFile
	if path == "" {
		path = defaultBatchFile
	}
	jobs, err := config.LoadBatch(path)
	if err != nil {
		if *configFile == "" && errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "错误: 没有指定任务参数，且找不到 %s\n\n", defaultBatchFile)
			usage()
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(2)
	}

	if *verbose {
		fmt.Printf("从 %s 读取 %d 个任务\n", path, len(jobs))
	}
	return jobs
}

func runGen(args []string) {
	jobs := loadJobs("gen", args)

	opts := &resxgen.RunOptions{
		Jobs:             jobs,
		Verbose:          *verbose,
		Async:            *async,
		WarningsAsErrors: *werror,
	}

	stats, err := resxgen.RunWithOptionsAndStats(context.Background(), opts)
	printStats(stats)
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func printStats(stats *resxgen.RunStats) {
	if stats == nil || (stats.FileCount == 0 && !*verbose) {
		return
	}
	fmt.Printf("\n统计: %d 个任务, 生成 %d 个文件, %d 个未变化, %d 个警告\n",
		stats.JobCount, stats.FileCount, stats.UnchangedCount, stats.WarningCount)
	fmt.Printf("耗时: 生成 %v, 总计 %v\n", stats.GenerateDuration, stats.TotalDuration)
	if *verbose && len(stats.Codes) > 0 {
		fmt.Printf("诊断: %s\n", stats.CodeSummary())
	}
}

// runCheck 检查输出文件是否与资源表一致，不一致时输出 diff 并以 1 退出
func runCheck(args []string) {
	jobs := loadJobs("check", args)
	reporter := resxgen.NewPrintReporter(os.Stderr)

	failed := 0
	for _, job := range jobs {
		res, err := resxgen.Check(context.Background(), job)
		if res != nil && res.Result != nil {
			for _, d := range res.Diagnostics {
				reporter.Report(job, d)
			}
		}
		if err != nil {
			failed++
			reportError(reporter, job, err)
			continue
		}
		if *werror && resxgen.HasWarnings(res.Diagnostics) {
			failed++
			continue
		}
		if !res.UpToDate {
			failed++
			fmt.Printf("已过期: %s\n%s", res.Output, res.Diff)
			continue
		}
		if *verbose {
			fmt.Printf("已是最新: %s\n", res.Output)
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "错误: %d 个任务检查未通过\n", failed)
		os.Exit(1)
	}
}

// runList 以表格列出资源表中的资源及其生成的标识符
func runList(args []string) {
	jobs := loadJobs("list", args)
	reporter := resxgen.NewPrintReporter(os.Stderr)

	failed := false
	for i, job := range jobs {
		res, err := resxgen.Render(context.Background(), job)
		for _, d := range res.Diagnostics {
			reporter.Report(job, d)
		}
		if err != nil {
			failed = true
			reportError(reporter, job, err)
			continue
		}

		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s (%s, %s)\n", res.Model.FullName(), res.Model.Dialect.Name, job.ResourceFile)

		tb := table.New("NAME", "IDENTIFIER", "KIND", "ARGS", "COMMENT")
		for _, r := range res.Model.Resources {
			argc := ""
			if r.Kind == resxgen.KindFormatted {
				argc = strconv.Itoa(r.ArgCount)
			}
			comment, _, _ := strings.Cut(strings.TrimSpace(r.Comment), "\n")
			tb.Append(r.Name, r.Identifier, r.Kind.String(), argc, comment)
		}
		_, _ = tb.WriteTo(os.Stdout)
	}

	if failed {
		os.Exit(1)
	}
}

// reportError 校验错误逐条上报，其他错误直接输出
func reportError(reporter resxgen.Reporter, job *resxgen.Job, err error) {
	validation := resxgen.ValidationErrors(err)
	if len(validation) == 0 {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return
	}
	lo.ForEach(validation, func(ve *resxgen.ValidationError, _ int) {
		reporter.Report(job, ve.Diagnostic())
	})
}

func usage() {
	_, _ = fmt.Fprintf(os.Stderr, `resxgen - 资源表代码生成工具

用法:
  resxgen [选项]
  resxgen [选项] gen   [任务参数]
  resxgen [选项] check [任务参数]
  resxgen [选项] list  [任务参数]
  resxgen [选项] dev   [任务参数]

命令:
  gen     执行代码生成（默认）
  check   检查生成的文件是否最新，不一致时输出 diff 并返回 1
  list    列出资源及其标识符
  dev     启动开发模式，监听资源表变动自动生成

没有任务参数时读取批处理文件（-config，默认 %s）。

选项:
`, defaultBatchFile)
	flag.PrintDefaults()

	_, _ = fmt.Fprintf(os.Stderr, "\n")
	_, _ = fmt.Fprint(os.Stderr, config.FormatHelpText(config.OptionDefs))

	_, _ = fmt.Fprintf(os.Stderr, `
批处理文件:
  defaults:
    lang: C#
  jobs:
    - file: Resources/Strings.resx
      class: App.Resources.Strings
      emit-format-methods: true

示例:
  resxgen gen -file Strings.resx -class App.Strings             生成 Strings.Designer.cs
  resxgen gen -file strings.yaml -class Messages -lang go       生成 messages.go
  resxgen -werror                                               按 resxgen.yaml 生成，警告视为错误
  resxgen -config build/resxgen.yaml check                      检查生成的文件是否最新
  resxgen list -file Strings.resx -class App.Strings            列出资源
  resxgen -v dev                                                开发模式，详细输出
`)
}
