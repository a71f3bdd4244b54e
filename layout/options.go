package layout

// BuildOptions 配置排版结果的生成，例如是否附带调试信息。
type BuildOptions struct {
	Measure func(line string) int // 行宽度（格），为空时使用 charwidth.StringWidth
	Debug   DebugOptions
	// Tokenize 将一行切分为记号，仅在 Debug.Tokens 开启时使用。
	// 返回的 X 会被忽略，由 Build 按字体盒重新计算。
	Tokenize func(line string) []DebugToken
}

// DebugOptions 控制调试相关输出。
type DebugOptions struct {
	Tokens bool // 在调试 JSON 中输出每行的记号与横坐标
}

// FontMeasurer 负责测量字符串在字体下的像素包围盒。
type FontMeasurer interface {
	Bounds(s string) (width, height int)
}
