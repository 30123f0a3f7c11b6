package builder

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ExportFormat 代码导出格式
type ExportFormat string

const (
	FormatReact ExportFormat = "react"
	FormatHTML  ExportFormat = "html"
)

const indentUnit = "  "

// Export 把页面组件树序列化为代码文本。
// 序列化是纯函数：不修改树，同一棵树两次导出字节级相同。
func Export(page *Page, format ExportFormat) (string, error) {
	switch format {
	case FormatReact:
		return exportReact(page), nil
	case FormatHTML:
		return exportHTML(page), nil
	default:
		return "", fmt.Errorf("不支持的导出格式: %s", format)
	}
}

// exportReact 导出为 React 风格的组件代码
func exportReact(page *Page) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("export default function %s() {\n", componentName(page.Name)))
	b.WriteString("  return (\n")
	b.WriteString("    <div>\n")
	for _, c := range page.Components {
		renderNode(&b, c, 3, styleReact)
	}
	b.WriteString("    </div>\n")
	b.WriteString("  );\n")
	b.WriteString("}\n")
	return b.String()
}

// exportHTML 导出为 HTML 文档
func exportHTML(page *Page) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html>\n")
	b.WriteString("<head>\n")
	b.WriteString(fmt.Sprintf("  <title>%s</title>\n", page.Name))
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	for _, c := range page.Components {
		renderNode(&b, c, 1, styleHTML)
	}
	b.WriteString("</body>\n")
	b.WriteString("</html>\n")
	return b.String()
}

// styleFunc 样式序列化方式，react 为对象字面量，html 为内联样式串
type styleFunc func(styles map[string]string) string

// renderNode 递归渲染节点，子节点缩进一级，无子节点时使用自闭合标签
func renderNode(b *strings.Builder, c *Component, depth int, style styleFunc) {
	indent := strings.Repeat(indentUnit, depth)

	b.WriteString(indent)
	b.WriteString("<")
	b.WriteString(string(c.Type))
	b.WriteString(renderProps(c.Props))
	if len(c.Styles) > 0 {
		b.WriteString(" ")
		b.WriteString(style(c.Styles))
	}

	if len(c.Children) == 0 {
		b.WriteString(" />\n")
		return
	}

	b.WriteString(">\n")
	for _, child := range c.Children {
		renderNode(b, child, depth+1, style)
	}
	b.WriteString(indent)
	b.WriteString("</")
	b.WriteString(string(c.Type))
	b.WriteString(">\n")
}

// renderProps 按键名排序渲染属性，保证输出确定
func renderProps(props map[string]interface{}) string {
	if len(props) == 0 {
		return ""
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(" %s=%q", k, propValue(props[k])))
	}
	return b.String()
}

// propValue 把属性值格式化为字符串
func propValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// styleReact 样式对象字面量，JSON 编码保证键有序
func styleReact(styles map[string]string) string {
	data, _ := json.Marshal(styles)
	return fmt.Sprintf("style={%s}", data)
}

// styleHTML 内联样式串，按键名排序
func styleHTML(styles map[string]string) string {
	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s: %s", k, styles[k]))
	}
	return fmt.Sprintf("style=%q", strings.Join(pairs, "; "))
}

// componentName 把页面名转换为合法的组件名
func componentName(name string) string {
	if name == "" {
		return "Page"
	}

	var b strings.Builder
	upper := true
	for _, r := range name {
		switch {
		case r == ' ' || r == '-' || r == '_':
			upper = true
		case upper:
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
