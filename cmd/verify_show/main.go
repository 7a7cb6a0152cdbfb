// Package main provides a headless reveal-timeline verification tool.
//
// Usage:
//
//	go run cmd/verify_show/main.go [flags]
//
// Flags:
//
//	--config <path>    Show config to verify (default: assets/config/show.yaml)
//	--stop-at <ms>     Issue Stop() at this time and verify nothing fires after
//	--fps <n>          Simulation step rate (default: 60)
//
// Purpose:
//   - Replay the reveal timeline with simulated time, no window needed
//   - Verify each enabled entry reveals exactly once within [delay, delay+step]
//   - Verify Stop() cancels every pending reveal
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kent12t/SAF-AR/internal/model"
	"github.com/kent12t/SAF-AR/pkg/config"
	"github.com/kent12t/SAF-AR/pkg/scene"
	"github.com/kent12t/SAF-AR/pkg/show"
)

var (
	configFlag = flag.String("config", config.DefaultShowConfigPath, "揭示序列配置路径")
	stopAtFlag = flag.Float64("stop-at", -1, "在该时刻（毫秒）停止序列并校验取消语义，<0 表示不停止")
	fpsFlag    = flag.Int("fps", 60, "模拟步进帧率")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	cfg, err := config.LoadShowConfig(*configFlag)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	anchor := scene.NewNode("target_anchor")
	registry := show.NewRegistry(model.NewLoader(), anchor)
	controller := show.NewController(registry)
	sequencer := show.NewSequencer(registry, controller, cfg.Entries)
	registry.SetClearHook(sequencer.Stop)

	registry.PreloadAll(cfg.Entries)
	fmt.Printf("配置: %s\n", *configFlag)
	fmt.Printf("资产: %d 成功, %d 失败\n\n", registry.LoadedCount(), registry.FailedCount())

	// 记录揭示时间线
	revealAt := make(map[string]float64)
	sequencer.AddObserver(&show.ObserverFuncs{
		Reveal: func(e *config.RevealEntry) {
			revealAt[e.ID] = sequencer.Elapsed()
			fmt.Printf("  T=%7.3fs  揭示 '%s' (延迟 %.0fms)\n", sequencer.Elapsed(), e.ID, e.Delay)
		},
	})

	// 模拟时长：最大延迟 + 1 秒
	horizon := 1.0
	for i := range cfg.Entries {
		if d := cfg.Entries[i].DelaySeconds() + 1.0; d > horizon {
			horizon = d
		}
	}

	dt := 1.0 / float64(*fpsFlag)
	stopAt := *stopAtFlag / 1000.0

	fmt.Println("时间线:")
	sequencer.Start()
	stopped := false
	stoppedAt := 0.0 // 实际停止时刻（序列时钟），受步长量化影响可能晚于 stopAt
	for t := 0.0; t < horizon; t += dt {
		if stopAt >= 0 && !stopped && t >= stopAt {
			stoppedAt = sequencer.Elapsed()
			fmt.Printf("  T=%7.3fs  Stop()\n", stoppedAt)
			sequencer.Stop()
			stopped = true
		}
		sequencer.Update(dt)
		controller.Tick(dt)
	}

	fmt.Println()
	failures := 0
	for i := range cfg.Entries {
		e := &cfg.Entries[i]
		at, revealed := revealAt[e.ID]

		switch {
		case !e.IsEnabled():
			if revealed {
				fmt.Printf("FAIL 禁用条目 '%s' 被揭示\n", e.ID)
				failures++
			}
		case registry.IsFailed(e.Path):
			if revealed {
				fmt.Printf("FAIL 加载失败条目 '%s' 被揭示\n", e.ID)
				failures++
			} else {
				fmt.Printf("SKIP '%s' (资产加载失败)\n", e.ID)
			}
		case e.Visible:
			if !revealed || at != 0 {
				fmt.Printf("FAIL 初始可见条目 '%s' 未在 T=0 显示\n", e.ID)
				failures++
			}
		case stopped && e.DelaySeconds() > stoppedAt:
			if revealed {
				fmt.Printf("FAIL 条目 '%s' 在 Stop() 后仍被揭示 (T=%.3fs)\n", e.ID, at)
				failures++
			}
		default:
			delay := e.DelaySeconds()
			if !revealed {
				fmt.Printf("FAIL 条目 '%s' 未被揭示\n", e.ID)
				failures++
			} else if at < delay || at > delay+dt+1e-9 {
				fmt.Printf("FAIL 条目 '%s' 揭示时刻 %.3fs 不在 [%.3f, %.3f]\n",
					e.ID, at, delay, delay+dt)
				failures++
			}
		}
	}

	if sequencer.PendingCount() != 0 && !stopped {
		fmt.Printf("FAIL 模拟结束后仍有 %d 个待揭示条目\n", sequencer.PendingCount())
		failures++
	}

	if failures > 0 {
		fmt.Printf("\n校验失败: %d 个问题\n", failures)
		os.Exit(1)
	}
	fmt.Println("\n校验通过")
}
