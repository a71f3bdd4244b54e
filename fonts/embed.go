// Package fonts 提供随程序一起分发的字体，路径形如 "package:///gomono.ttf"。
package fonts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-fonts/latin-modern/lmmono10regular"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Scheme 是内置字体路径的前缀。
const Scheme = "package:///"

// DefaultPath 是默认使用的内置等宽字体。
const DefaultPath = Scheme + "gomono.ttf"

var bundled = map[string][]byte{
	"gomono.ttf":     gomono.TTF,
	"gomonobold.ttf": gomonobold.TTF,
	"goregular.ttf":  goregular.TTF,
	"lmmono10.otf":   lmmono10regular.TTF,
}

// IsBundled 判断路径是否指向内置字体。
func IsBundled(path string) bool {
	return strings.HasPrefix(path, Scheme)
}

// Load 返回内置字体的字节数据，path 可写为 "package:///gomono.ttf" 或直接 "gomono.ttf"。
func Load(path string) ([]byte, error) {
	name := strings.TrimPrefix(path, Scheme)
	name = strings.TrimPrefix(name, "res/")
	data, ok := bundled[name]
	if !ok {
		return nil, fmt.Errorf("找不到内置字体 %s%s", Scheme, name)
	}
	return data, nil
}

// Names 返回所有内置字体的名称（已排序）。
func Names() []string {
	names := make([]string, 0, len(bundled))
	for name := range bundled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
