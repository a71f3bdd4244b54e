package renderer

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ByLCY/impaper/fonts"
)

// ParseFunc 将字体文件数据解析为指定像素字号的字体。
type ParseFunc func(data []byte, size int) (Font, error)

type fontKey struct {
	path string
	size int
}

// FontCache 按 (路径, 字号) 缓存已加载的字体，同一路径的文件数据只读取一次。
// 可在多个绘制器之间共享。
type FontCache struct {
	baseDir string
	parse   ParseFunc

	mu    sync.Mutex
	blobs map[string][]byte
	faces map[fontKey]Font
}

var _ FontLoader = (*FontCache)(nil)

// NewFontCache 创建字体缓存，相对路径以 baseDir 为根解析。
func NewFontCache(baseDir string, parse ParseFunc) *FontCache {
	return &FontCache{
		baseDir: baseDir,
		parse:   parse,
		blobs:   map[string][]byte{},
		faces:   map[fontKey]Font{},
	}
}

// Load 返回 (path, size) 对应的字体，未缓存时读取并解析。
// 所有失败都包装 ErrFontUnavailable。
func (c *FontCache) Load(path string, size int) (Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: 字号必须为正数，got %d", ErrFontUnavailable, size)
	}
	key := fontKey{path: path, size: size}

	c.mu.Lock()
	defer c.mu.Unlock()

	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	data, err := c.readLocked(path)
	if err != nil {
		return nil, err
	}
	face, err := c.parse(data, size)
	if err != nil {
		return nil, fmt.Errorf("%w: 解析字体 %s 失败: %w", ErrFontUnavailable, path, err)
	}
	c.faces[key] = face
	return face, nil
}

// Invalidate 丢弃 path 的文件数据以及所有字号的字体，下次 Load 时重新读取。
func (c *FontCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.blobs, path)
	for key := range c.faces {
		if key.path == path {
			delete(c.faces, key)
		}
	}
}

// Purge 清空缓存。
func (c *FontCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blobs = map[string][]byte{}
	c.faces = map[fontKey]Font{}
}

// Len 返回已缓存的字体数量。
func (c *FontCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.faces)
}

func (c *FontCache) readLocked(path string) ([]byte, error) {
	if data, ok := c.blobs[path]; ok {
		return data, nil
	}
	data, err := ReadFont(c.baseDir, path)
	if err != nil {
		return nil, err
	}
	c.blobs[path] = data
	return data, nil
}

// ReadFont 读取字体文件：package:/// 开头表示内置字体，否则为文件系统路径。
func ReadFont(baseDir, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: 缺少字体路径", ErrFontUnavailable)
	}
	if fonts.IsBundled(path) {
		data, err := fonts.Load(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFontUnavailable, err)
		}
		return data, nil
	}
	if baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: 读取字体 %s 失败: %w", ErrFontUnavailable, path, err)
	}
	return data, nil
}
