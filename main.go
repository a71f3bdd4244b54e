package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/impaper/binding"
	"github.com/ByLCY/impaper/config"
	"github.com/ByLCY/impaper/drawer"
	"github.com/ByLCY/impaper/layout"
	"github.com/ByLCY/impaper/renderer"
	canvasrenderer "github.com/ByLCY/impaper/renderer/canvas"
	opentyperenderer "github.com/ByLCY/impaper/renderer/opentype"
)

type options struct {
	input   string
	output  string
	conf    string
	colored bool
	backend string
	debug   string
	data    string
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "in", "-", "文本文件路径，- 表示标准输入")
	flag.StringVar(&opts.output, "out", "output/text.png", "PNG 输出路径")
	flag.StringVar(&opts.conf, "conf", "", "渲染配置文件路径")
	flag.BoolVar(&opts.colored, "colored", false, "启用颜色标签，输出彩色图")
	flag.StringVar(&opts.backend, "backend", "canvas", "字体后端：canvas 或 opentype")
	flag.StringVar(&opts.debug, "debug", "", "布局调试 JSON 输出路径")
	flag.StringVar(&opts.data, "data", "", "替换文本中 ${path} 占位符的 JSON 数据")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatalf("生成图片失败: %v", err)
	}
	fmt.Printf("已生成图片：%s\n", opts.output)
}

// textDrawer 是两种绘制器共有的操作。
type textDrawer interface {
	Layout(text string, dbg layout.DebugOptions) (*layout.Result, error)
	Draw(text string) (xdraw.Image, error)
}

// run 串联配置、折行、布局与绘制。
func run(opts options) error {
	conf := config.Default()
	baseDir := ""
	if opts.conf != "" {
		c, err := config.Load(opts.conf)
		if err != nil {
			return err
		}
		conf = c
		baseDir = filepath.Dir(opts.conf)
	}

	fonts, err := newLoader(opts.backend, baseDir)
	if err != nil {
		return err
	}

	text, err := readText(opts.input)
	if err != nil {
		return err
	}
	data, err := binding.Decode(opts.data)
	if err != nil {
		return err
	}
	text = binding.Interpolate(text, data)

	var d textDrawer
	if opts.colored {
		d = drawer.NewColored(conf, fonts)
	} else {
		d = drawer.NewSimple(conf, fonts)
	}

	if opts.debug != "" {
		result, err := d.Layout(text, layout.DebugOptions{Tokens: true})
		if err != nil {
			return fmt.Errorf("布局计算失败: %w", err)
		}
		if err := layout.WriteDebugJSON(result, opts.debug); err != nil {
			return err
		}
	}

	img, err := d.Draw(text)
	if err != nil {
		return fmt.Errorf("绘制失败: %w", err)
	}
	return writePNG(opts.output, img)
}

func newLoader(backend, baseDir string) (renderer.FontLoader, error) {
	switch backend {
	case "", "canvas":
		return canvasrenderer.NewLoader(baseDir), nil
	case "opentype":
		return opentyperenderer.NewLoader(baseDir), nil
	default:
		return nil, fmt.Errorf("未知的字体后端 %q", backend)
	}
}

func readText(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("读取标准输入失败: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("无法打开文本文件 %s: %w", path, err)
	}
	return string(data), nil
}

func writePNG(path string, img xdraw.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建输出文件失败: %w", err)
	}
	if err := renderer.EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
