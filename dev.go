package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/donutnomad/resxgen/internal/resx"
	"github.com/donutnomad/resxgen/resxgen"
	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
)

// DevOptions dev 命令选项
type DevOptions struct {
	Jobs             []*resxgen.Job
	Verbose          bool          // 详细输出
	WarningsAsErrors bool          // 警告视为错误
	Debounce         time.Duration // 防抖动时间
}

// devRunner 处理文件变动的核心逻辑
type devRunner struct {
	opts    *DevOptions
	watcher *fsnotify.Watcher
	ctx     context.Context // 用于响应退出信号

	// jobs 资源表绝对路径 -> 使用该资源表的任务
	jobs map[string][]*resxgen.Job

	// 防抖动相关
	mu           sync.Mutex
	pendingFiles map[string]*time.Timer // key: 资源表绝对路径
}

// runDev 启动开发模式
func runDev(args []string) {
	opts := &DevOptions{
		Jobs:             loadJobs("dev", args),
		Verbose:          *verbose,
		WarningsAsErrors: *werror,
		Debounce:         500 * time.Millisecond,
	}

	if err := dev(opts); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

// dev 启动开发模式: 先完整生成一次，然后监听资源表变动
func dev(opts *DevOptions) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听退出信号
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n正在退出...")
		cancel()
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听器失败: %w", err)
	}
	defer watcher.Close()

	jobs, err := groupJobsByFile(opts.Jobs)
	if err != nil {
		return err
	}

	runner := &devRunner{
		opts:         opts,
		watcher:      watcher,
		ctx:          ctx,
		jobs:         jobs,
		pendingFiles: make(map[string]*time.Timer),
	}

	// 清理函数：退出时停止所有待处理的定时器
	defer func() {
		runner.mu.Lock()
		for _, timer := range runner.pendingFiles {
			timer.Stop()
		}
		runner.mu.Unlock()
	}()

	// 监听资源表所在目录，编辑器保存时常常是先写临时文件再重命名
	dirs := collectWatchDirs(lo.Keys(jobs))
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("添加监听目录失败 %s: %w", dir, err)
		}
		if opts.Verbose {
			fmt.Printf("监听目录: %s\n", dir)
		}
	}

	runner.runGenerate(opts.Jobs)

	fmt.Printf("开发模式已启动，监听 %d 个资源表\n", len(jobs))
	fmt.Println("按 Ctrl+C 退出")
	fmt.Println()

	return runner.watchLoop(ctx)
}

// watchLoop 事件处理循环
func (r *devRunner) watchLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			r.handleEvent(event)

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			if r.opts.Verbose {
				fmt.Printf("监听错误: %v\n", err)
			}
		}
	}
}

// handleEvent 处理文件事件
func (r *devRunner) handleEvent(event fsnotify.Event) {
	// 只关注 Write、Create 和 Rename 事件
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	if !resx.IsTableFile(event.Name) {
		return
	}

	filePath, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	if _, ok := r.jobs[filePath]; !ok {
		return
	}

	if r.opts.Verbose {
		fmt.Printf("检测到文件变化: %s\n", filePath)
	}

	r.scheduleGenerate(filePath)
}

// scheduleGenerate 防抖动调度生成
func (r *devRunner) scheduleGenerate(filePath string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 取消之前的 timer
	if timer, exists := r.pendingFiles[filePath]; exists {
		timer.Stop()
	}

	r.pendingFiles[filePath] = time.AfterFunc(r.opts.Debounce, func() {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		// 编辑器保存过程中文件可能暂时不完整，无法解析时等待下一次变动
		if _, err := resx.Load(filePath); err != nil {
			fmt.Printf("资源表无法解析 %s: %v\n", filePath, err)
		} else {
			r.runGenerate(r.jobs[filePath])
		}

		r.mu.Lock()
		delete(r.pendingFiles, filePath)
		r.mu.Unlock()
	})
}

// runGenerate 执行实际的代码生成
func (r *devRunner) runGenerate(jobs []*resxgen.Job) {
	opts := &resxgen.RunOptions{
		Jobs:             jobs,
		Verbose:          r.opts.Verbose,
		WarningsAsErrors: r.opts.WarningsAsErrors,
	}

	stats, err := resxgen.RunWithOptionsAndStats(r.ctx, opts)
	if err != nil {
		fmt.Printf("生成失败: %v\n", err)
		return
	}

	if stats.FileCount > 0 {
		fmt.Printf("生成完成: %d 个文件 (耗时: %v)\n", stats.FileCount, stats.TotalDuration)
	} else if r.opts.Verbose {
		fmt.Printf("生成完成: 无文件变化\n")
	}
}

// groupJobsByFile 按资源表绝对路径分组任务
func groupJobsByFile(jobs []*resxgen.Job) (map[string][]*resxgen.Job, error) {
	result := make(map[string][]*resxgen.Job)
	for _, job := range jobs {
		abs, err := filepath.Abs(job.ResourceFile)
		if err != nil {
			return nil, err
		}
		result[abs] = append(result[abs], job)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("没有需要监听的资源表")
	}
	return result, nil
}

// collectWatchDirs 收集资源表所在的目录，去重并排序
func collectWatchDirs(files []string) []string {
	dirs := lo.Uniq(lo.Map(files, func(file string, _ int) string {
		return filepath.Dir(file)
	}))
	slices.Sort(dirs)
	return dirs
}
