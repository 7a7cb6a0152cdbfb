package tracking

import (
	"fmt"
	"log"
	"sort"

	"github.com/kent12t/SAF-AR/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// scriptEvent 脚本中的一条定时事件
type scriptEvent struct {
	// At 事件触发时刻（毫秒，相对脚本起点）
	At float64 `yaml:"at"`

	// Event 事件名："found" 或 "lost"
	Event string `yaml:"event"`
}

// trackScript 跟踪事件脚本文件的顶层结构
type trackScript struct {
	// Loop 播完后是否从头循环
	Loop bool `yaml:"loop"`

	// Events 定时事件列表
	Events []scriptEvent `yaml:"events"`
}

// ScriptTracker 按脚本回放 found/lost 事件的跟踪器
//
// 脚本文件充当"编译后的目标描述符"：Init 解析并校验脚本，
// Update 按累计时间依次发出到期事件。同一时刻的多个事件按声明顺序发出。
type ScriptTracker struct {
	path    string
	loop    bool
	events  []scriptEvent // 按 At 稳定排序
	elapsed float64
	next    int
}

// NewScriptTracker 创建脚本跟踪器，path 为脚本文件路径
func NewScriptTracker(path string) *ScriptTracker {
	return &ScriptTracker{path: path}
}

// Init 加载并校验事件脚本
func (t *ScriptTracker) Init() error {
	data, err := embedded.ReadFileOrDisk(t.path)
	if err != nil {
		return &InitError{Reason: fmt.Sprintf("无法读取跟踪脚本 %s", t.path), Err: err}
	}

	var script trackScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return &InitError{Reason: fmt.Sprintf("无法解析跟踪脚本 %s", t.path), Err: err}
	}
	if len(script.Events) == 0 {
		return &InitError{Reason: fmt.Sprintf("跟踪脚本 %s 没有事件", t.path)}
	}
	for _, ev := range script.Events {
		if ev.Event != "found" && ev.Event != "lost" {
			return &InitError{Reason: fmt.Sprintf("跟踪脚本 %s 含未知事件 '%s'", t.path, ev.Event)}
		}
		if ev.At < 0 {
			return &InitError{Reason: fmt.Sprintf("跟踪脚本 %s 含负时刻事件", t.path)}
		}
	}

	// 稳定排序：同一时刻的事件保持声明顺序
	sort.SliceStable(script.Events, func(i, j int) bool {
		return script.Events[i].At < script.Events[j].At
	})

	t.loop = script.Loop
	t.events = script.Events
	t.elapsed = 0
	t.next = 0

	log.Printf("[ScriptTracker] 加载脚本 %s: %d 个事件, loop=%v", t.path, len(t.events), t.loop)
	return nil
}

// Update 推进脚本时间并返回到期事件
func (t *ScriptTracker) Update(deltaTime float64) []EventKind {
	if len(t.events) == 0 {
		return nil
	}

	t.elapsed += deltaTime

	var out []EventKind
	for t.next < len(t.events) && t.events[t.next].At/1000.0 <= t.elapsed {
		ev := t.events[t.next]
		kind := EventTargetFound
		if ev.Event == "lost" {
			kind = EventTargetLost
		}
		out = append(out, kind)
		t.next++

		// 循环脚本：播完后回到起点重新计时
		if t.next >= len(t.events) && t.loop {
			t.elapsed -= t.events[len(t.events)-1].At / 1000.0
			if t.elapsed < 0 {
				t.elapsed = 0
			}
			t.next = 0
			break
		}
	}
	return out
}

// Name 返回跟踪器名称
func (t *ScriptTracker) Name() string {
	return "script"
}
