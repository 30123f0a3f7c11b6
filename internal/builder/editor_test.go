package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor() *Editor {
	return NewEditor(&Page{Id: "page-1", Name: "landing page"})
}

func TestAddComponent(t *testing.T) {
	e := newTestEditor()

	require.NoError(t, e.AddComponent(&Component{Id: "a", Type: ComponentContainer}, ""))
	require.NoError(t, e.AddComponent(&Component{Id: "b", Type: ComponentText}, "a"))

	// 根节点 a 恰有一个子节点 b
	page := e.Page()
	require.Len(t, page.Components, 1)
	assert.Equal(t, "a", page.Components[0].Id)
	require.Len(t, page.Components[0].Children, 1)
	assert.Equal(t, "b", page.Components[0].Children[0].Id)
}

func TestAddComponentNested(t *testing.T) {
	e := newTestEditor()

	require.NoError(t, e.AddComponent(&Component{Id: "root", Type: ComponentContainer}, ""))
	require.NoError(t, e.AddComponent(&Component{Id: "card", Type: ComponentCard}, "root"))
	require.NoError(t, e.AddComponent(&Component{Id: "text", Type: ComponentText}, "card"))
	require.NoError(t, e.AddComponent(&Component{Id: "button", Type: ComponentButton}, "card"))

	card := e.Page().Components[0].Children[0]
	require.Len(t, card.Children, 2)
	// 子节点保持添加顺序
	assert.Equal(t, "text", card.Children[0].Id)
	assert.Equal(t, "button", card.Children[1].Id)
}

func TestAddComponentMissingParent(t *testing.T) {
	e := newTestEditor()
	require.NoError(t, e.AddComponent(&Component{Id: "a", Type: ComponentContainer}, ""))

	// 父节点不存在时树保持不变
	require.NoError(t, e.AddComponent(&Component{Id: "b", Type: ComponentText}, "missing"))
	require.Len(t, e.Page().Components, 1)
	assert.Empty(t, e.Page().Components[0].Children)
}

func TestAddComponentInvalid(t *testing.T) {
	e := newTestEditor()

	require.Error(t, e.AddComponent(&Component{Id: "", Type: ComponentText}, ""))
	require.Error(t, e.AddComponent(&Component{Id: "a", Type: "video"}, ""))

	require.NoError(t, e.AddComponent(&Component{Id: "a", Type: ComponentText}, ""))
	// 重复ID
	require.Error(t, e.AddComponent(&Component{Id: "a", Type: ComponentText}, ""))
}

func TestUpdateComponent(t *testing.T) {
	e := newTestEditor()
	require.NoError(t, e.AddComponent(&Component{
		Id:     "a",
		Type:   ComponentText,
		Props:  map[string]interface{}{"content": "Hello", "size": 14},
		Styles: map[string]string{"color": "red"},
	}, ""))

	// Props 整体替换而非深合并
	require.NoError(t, e.UpdateComponent("a", &ComponentUpdate{
		Props: map[string]interface{}{"content": "World"},
	}))

	node := e.Page().Components[0]
	assert.Equal(t, map[string]interface{}{"content": "World"}, node.Props)
	// 未更新的字段保持原值
	assert.Equal(t, map[string]string{"color": "red"}, node.Styles)
	assert.Equal(t, ComponentText, node.Type)

	// 更新不存在的组件不做任何修改
	require.NoError(t, e.UpdateComponent("missing", &ComponentUpdate{
		Props: map[string]interface{}{"x": 1},
	}))
	assert.Equal(t, map[string]interface{}{"content": "World"}, e.Page().Components[0].Props)
}

func TestDeleteComponentSubtree(t *testing.T) {
	e := newTestEditor()
	require.NoError(t, e.AddComponent(&Component{Id: "a", Type: ComponentContainer}, ""))
	require.NoError(t, e.AddComponent(&Component{Id: "b", Type: ComponentCard}, "a"))
	require.NoError(t, e.AddComponent(&Component{Id: "c", Type: ComponentText}, "b"))
	require.NoError(t, e.AddComponent(&Component{Id: "d", Type: ComponentText}, ""))

	// 删除 a 连同后代 b、c
	e.DeleteComponent("a")

	page := e.Page()
	require.Len(t, page.Components, 1)
	assert.Equal(t, "d", page.Components[0].Id)
	assert.Nil(t, findComponent(page.Components, "b"))
	assert.Nil(t, findComponent(page.Components, "c"))
}

func TestDeleteComponentMissing(t *testing.T) {
	e := newTestEditor()
	require.NoError(t, e.AddComponent(&Component{Id: "a", Type: ComponentContainer}, ""))
	require.NoError(t, e.AddComponent(&Component{Id: "b", Type: ComponentText}, "a"))

	before := e.Page().Components

	// 删除不存在的ID，树结构保持不变
	e.DeleteComponent("missing")

	page := e.Page()
	require.Len(t, page.Components, 1)
	assert.Equal(t, before[0], page.Components[0])
	require.Len(t, page.Components[0].Children, 1)
	assert.Equal(t, "b", page.Components[0].Children[0].Id)
}

func TestDeleteClearsSelection(t *testing.T) {
	e := newTestEditor()
	require.NoError(t, e.AddComponent(&Component{Id: "a", Type: ComponentContainer}, ""))
	require.NoError(t, e.AddComponent(&Component{Id: "b", Type: ComponentText}, "a"))

	// 选中被删除子树内的节点时清除选中状态
	e.Select("b")
	e.DeleteComponent("a")
	assert.Empty(t, e.Selected())

	// 选中其它节点时不受影响
	require.NoError(t, e.AddComponent(&Component{Id: "c", Type: ComponentText}, ""))
	require.NoError(t, e.AddComponent(&Component{Id: "d", Type: ComponentText}, ""))
	e.Select("c")
	e.DeleteComponent("d")
	assert.Equal(t, "c", e.Selected())
}
