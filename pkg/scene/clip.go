package scene

// Clip 一段可播放的动画剪辑
// 剪辑本身是只读数据，播放进度由 Controller 的 ClipState 维护
type Clip struct {
	// Name 剪辑名称（如 "intro", "march"）
	Name string

	// Duration 剪辑时长（秒）
	Duration float64
}

// ClipSet 一个资产的具名剪辑集合
//
// 插入顺序 = 容器文件中的声明顺序，遍历时必须保持该顺序，
// 因此内部用有序切片 + 名称索引而不是裸 map。
type ClipSet struct {
	clips []Clip
	index map[string]int
}

// NewClipSet 创建空剪辑集合
func NewClipSet() *ClipSet {
	return &ClipSet{
		index: make(map[string]int),
	}
}

// Add 追加一个剪辑，保持声明顺序
// 同名剪辑以后出现者覆盖（保留原有位置）
func (cs *ClipSet) Add(clip Clip) {
	if i, ok := cs.index[clip.Name]; ok {
		cs.clips[i] = clip
		return
	}
	cs.index[clip.Name] = len(cs.clips)
	cs.clips = append(cs.clips, clip)
}

// Get 按名称查找剪辑
func (cs *ClipSet) Get(name string) (Clip, bool) {
	if i, ok := cs.index[name]; ok {
		return cs.clips[i], true
	}
	return Clip{}, false
}

// Clips 返回声明顺序的剪辑列表
func (cs *ClipSet) Clips() []Clip {
	return cs.clips
}

// Len 返回剪辑数量
func (cs *ClipSet) Len() int {
	return len(cs.clips)
}
