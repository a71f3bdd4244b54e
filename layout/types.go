package layout

// 该文件定义布局几何与调试结果，供排版、绘制与调试 JSON 共用。

// Size 表示宽高，单位由上下文决定（格或像素）。
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Point 表示像素坐标，原点在画布左上角。
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Spacing 是上右下左顺序的四边距，单位 px。
type Spacing struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Uniform 返回四边相同的边距。
func Uniform(v int) Spacing {
	return Spacing{Top: v, Right: v, Bottom: v, Left: v}
}

// SpacingOf 按类 CSS 语义展开边距：
//   - 1 个值：四边相同
//   - 2 个值：上下 = v1，左右 = v2
//   - 3 个值：上 = v1，右 = v2，下 = v3，左 = 0
//   - 4 个及以上：上右下左，忽略多余的值
//
// 没有值时返回 fallback。
func SpacingOf(fallback Spacing, vals ...int) Spacing {
	switch len(vals) {
	case 0:
		return fallback
	case 1:
		return Uniform(vals[0])
	case 2:
		return Spacing{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
	case 3:
		return Spacing{Top: vals[0], Right: vals[1], Bottom: vals[2]}
	default:
		return Spacing{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
	}
}

// Config 描述页面布局：外边距、内边距与行距，单位 px。
type Config struct {
	Margin  Spacing `json:"margin"`
	Padding Spacing `json:"padding"`
	Spacing int     `json:"spacing"` // 行距，仅加在相邻两行之间
}

// DefaultConfig 返回默认布局：外边距 6px，内边距 2px，行距 2px。
func DefaultConfig() Config {
	return Config{
		Margin:  Uniform(6),
		Padding: Uniform(2),
		Spacing: 2,
	}
}

// Result 记录一次绘制的排版结果，便于调试或可视化。
type Result struct {
	Lines    []string `json:"lines"`
	CellSize Size     `json:"cellSize"` // 文本区尺寸，单位是格
	FontBox  Size     `json:"fontBox"`  // 每格的像素尺寸
	Canvas   Size     `json:"canvas"`   // 画布尺寸，单位 px
	Origin   Point    `json:"origin"`   // 文本起点，单位 px
	Layout   Config   `json:"layout"`
	Debug    *Debug   `json:"debug,omitempty"`
}

// Debug 保存可选的调试信息，仅在 BuildOptions 开启时输出。
type Debug struct {
	Tokens [][]DebugToken `json:"tokens,omitempty"` // 按行记录带标签文本的记号
}

// DebugToken 是一个记号及其绘制位置。
type DebugToken struct {
	Pos  int    `json:"pos"`
	Text string `json:"text"`
	Tag  bool   `json:"tag,omitempty"`
	X    int    `json:"x"`
}
