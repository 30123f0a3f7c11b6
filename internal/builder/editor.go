package builder

import (
	"errors"
	"fmt"
)

// ErrInvalidComponent 非法组件输入
var ErrInvalidComponent = errors.New("非法的组件")

// Editor 组件树编辑器，维护一个页面的组件树与当前选中的组件。
// 编辑器由单个会话独占使用，所有操作同步执行。
type Editor struct {
	page       *Page
	selectedId string
}

// NewEditor 为页面创建编辑器
func NewEditor(page *Page) *Editor {
	if page.Components == nil {
		page.Components = []*Component{}
	}
	return &Editor{page: page}
}

// Page 返回编辑器持有的页面
func (e *Editor) Page() *Page {
	return e.page
}

// Select 选中组件
func (e *Editor) Select(id string) {
	e.selectedId = id
}

// Selected 返回当前选中的组件ID，未选中时为空字符串
func (e *Editor) Selected() string {
	return e.selectedId
}

// AddComponent 添加组件。parentId 为空时追加为根节点，
// 否则深度优先查找父节点并追加到其子节点末尾；
// 父节点不存在时不做任何修改。
func (e *Editor) AddComponent(node *Component, parentId string) error {
	if node == nil || node.Id == "" {
		return fmt.Errorf("%w: 组件ID不能为空", ErrInvalidComponent)
	}
	if !ValidComponentType(node.Type) {
		return fmt.Errorf("%w: 未知的组件类型 %s", ErrInvalidComponent, node.Type)
	}
	if findComponent(e.page.Components, node.Id) != nil {
		return fmt.Errorf("%w: 组件ID已存在 %s", ErrInvalidComponent, node.Id)
	}

	if parentId == "" {
		e.page.Components = append(e.page.Components, node)
		return nil
	}

	if parent := findComponent(e.page.Components, parentId); parent != nil {
		parent.Children = append(parent.Children, node)
	}
	return nil
}

// UpdateComponent 按ID更新组件，Props 与 Styles 整体替换；
// 组件不存在时不做任何修改。
func (e *Editor) UpdateComponent(id string, update *ComponentUpdate) error {
	node := findComponent(e.page.Components, id)
	if node == nil {
		return nil
	}

	if update.Type != nil {
		if !ValidComponentType(*update.Type) {
			return fmt.Errorf("%w: 未知的组件类型 %s", ErrInvalidComponent, *update.Type)
		}
		node.Type = *update.Type
	}
	if update.Props != nil {
		node.Props = update.Props
	}
	if update.Styles != nil {
		node.Styles = update.Styles
	}
	return nil
}

// DeleteComponent 按ID删除组件及其整个子树。
// 若当前选中的组件在被删除的子树内，同时清除选中状态。
func (e *Editor) DeleteComponent(id string) {
	target := findComponent(e.page.Components, id)
	if target == nil {
		return
	}

	if e.selectedId != "" && findComponent([]*Component{target}, e.selectedId) != nil {
		e.selectedId = ""
	}

	e.page.Components = removeComponent(e.page.Components, id)
}

// findComponent 深度优先按ID查找组件
func findComponent(components []*Component, id string) *Component {
	for _, c := range components {
		if c.Id == id {
			return c
		}
		if found := findComponent(c.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// removeComponent 从组件序列中移除指定ID的节点（连同子树）
func removeComponent(components []*Component, id string) []*Component {
	result := components[:0]
	for _, c := range components {
		if c.Id == id {
			continue
		}
		c.Children = removeComponent(c.Children, id)
		result = append(result, c)
	}
	return result
}
