package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher 监听配置文件变更，重新加载后回调最新配置。
// 优先使用 fsnotify 事件；监听建立失败时退化为 mtime 轮询。
type Watcher struct {
	Path     string
	Interval time.Duration // 轮询退化路径的周期
}

// Start 阻塞监听直到 ctx 取消；加载失败的变更被忽略。
func (w Watcher) Start(ctx context.Context, onUpdate func(AppConfig)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return w.poll(ctx, onUpdate)
	}
	defer fw.Close()
	// 监听目录而非文件：编辑器原子替换会让文件级 watch 失效。
	if err := fw.Add(filepath.Dir(w.Path)); err != nil {
		return w.poll(ctx, onUpdate)
	}

	target := filepath.Clean(w.Path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return w.poll(ctx, onUpdate)
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if cfg, err := Load(w.Path); err == nil && onUpdate != nil {
				onUpdate(cfg)
			}
		case _, ok := <-fw.Errors:
			if !ok {
				return w.poll(ctx, onUpdate)
			}
		}
	}
}

// poll 按 mtime 轮询的退化实现。
func (w Watcher) poll(ctx context.Context, onUpdate func(AppConfig)) error {
	interval := w.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	var lastMod time.Time
	if info, err := os.Stat(w.Path); err == nil {
		lastMod = info.ModTime()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			info, err := os.Stat(w.Path)
			if err != nil {
				continue
			}
			if info.ModTime().After(lastMod) {
				lastMod = info.ModTime()
				if cfg, err := Load(w.Path); err == nil && onUpdate != nil {
					onUpdate(cfg)
				}
			}
		}
	}
}
