// Package binding 将待绘制文本中的 ${path} 占位符替换为 JSON 数据中的值。
//
//	binding.Interpolate("你好，${user.name}！第 ${items[0]} 项", data)
package binding

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Decode 解析 JSON 数据，空字符串得到 nil。
func Decode(raw string) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("解析数据 JSON 失败: %w", err)
	}
	return data, nil
}

// Interpolate 替换 text 中所有能解析的占位符，无法解析的原样保留。
func Interpolate(text string, data any) string {
	out, _ := Render(text, data)
	return out
}

// Render 与 Interpolate 相同，同时返回未能解析的路径（按出现顺序，可重复）。
func Render(text string, data any) (string, []string) {
	var missing []string
	out := placeholder.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if val, ok := Lookup(data, path); ok {
			return format(val)
		}
		missing = append(missing, path)
		return match
	})
	return out, missing
}

// Lookup 按 a.b[0].c 形式的路径取值。
func Lookup(data any, path string) (any, bool) {
	if data == nil || path == "" {
		return nil, false
	}
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := splitSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			obj, isObj := current.(map[string]any)
			if !isObj {
				return nil, false
			}
			if current, ok = obj[name]; !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			arr, isArr := current.([]any)
			if !isArr || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}

// splitSegment 拆分 name[1][2]。
func splitSegment(segment string) (string, []int, bool) {
	name, rest, _ := strings.Cut(segment, "[")
	if rest == "" {
		return name, nil, true
	}
	rest = "[" + rest
	var indexes []int
	for rest != "" {
		inner, after, found := strings.Cut(rest[1:], "]")
		if rest[0] != '[' || !found {
			return "", nil, false
		}
		idx, err := strconv.Atoi(inner)
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = after
	}
	return name, indexes, true
}

// format 输出数值时不带多余的小数位。
func format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
