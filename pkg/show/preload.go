package show

import (
	"log"
	"runtime"

	"github.com/kent12t/SAF-AR/pkg/config"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sync/errgroup"
)

// 预加载并发度的边界
const (
	preloadMinWorkers = 1
	preloadMaxWorkers = 8

	// preloadLowMemBytes 可用内存低于该值时退化为串行加载
	preloadLowMemBytes = 256 << 20
)

// preloadWorkers 根据 CPU 核数与可用内存决定预加载并发度
//
// 资产解码是 CPU+IO 混合负载，并发度取物理核数并限制在
// [1, 8]；可用内存紧张时退化为串行，避免解码高峰把查看器挤出内存。
func preloadWorkers() int {
	workers := runtime.NumCPU()
	if counts, err := cpu.Counts(false); err == nil && counts > 0 {
		workers = counts
	}

	if workers < preloadMinWorkers {
		workers = preloadMinWorkers
	}
	if workers > preloadMaxWorkers {
		workers = preloadMaxWorkers
	}

	if vm, err := mem.VirtualMemory(); err == nil && vm.Available < preloadLowMemBytes {
		log.Printf("[Registry] 可用内存不足 (%d MB)，预加载退化为串行", vm.Available>>20)
		return 1
	}

	return workers
}

// PreloadAll 并发预加载所有启用条目的资产
//
// 这是序列开始前的异步加载阶段：单条资产的失败只记录到
// 注册表的失败缓存（该条目在本轮运行中被跳过并显示占位提示），
// 不会中断其他资产的加载。进度通过 LoadedCount/FailedCount 查询。
func (r *Registry) PreloadAll(entries []config.RevealEntry) {
	workers := preloadWorkers()
	log.Printf("[Registry] 预加载 %d 个条目, 并发度 %d", len(entries), workers)

	var g errgroup.Group
	g.SetLimit(workers)

	for i := range entries {
		entry := &entries[i]
		if !entry.IsEnabled() {
			continue
		}
		g.Go(func() error {
			// 失败已在 Load 内记录与隔离，不向上传播
			if _, err := r.Load(entry); err != nil {
				log.Printf("[Registry] 预加载跳过条目 '%s': %v", entry.ID, err)
			}
			return nil
		})
	}

	g.Wait()
	log.Printf("[Registry] 预加载完成: %d 成功, %d 失败", r.LoadedCount(), r.FailedCount())
}
