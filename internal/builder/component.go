package builder

// ComponentType 页面组件类型
type ComponentType string

const (
	ComponentContainer ComponentType = "container"
	ComponentText      ComponentType = "text"
	ComponentButton    ComponentType = "button"
	ComponentImage     ComponentType = "image"
	ComponentInput     ComponentType = "input"
	ComponentForm      ComponentType = "form"
	ComponentNavbar    ComponentType = "navbar"
	ComponentFooter    ComponentType = "footer"
	ComponentCard      ComponentType = "card"
	ComponentGrid      ComponentType = "grid"
	ComponentFlex      ComponentType = "flex"
)

// ValidComponentType 检查组件类型是否合法
func ValidComponentType(t ComponentType) bool {
	switch t {
	case ComponentContainer, ComponentText, ComponentButton, ComponentImage,
		ComponentInput, ComponentForm, ComponentNavbar, ComponentFooter,
		ComponentCard, ComponentGrid, ComponentFlex:
		return true
	}
	return false
}

// Component 页面组件树节点。Children 有序且由父节点独占，
// Props 的值限定为字符串、数字或布尔值。
type Component struct {
	Id       string                 `json:"id"`
	Type     ComponentType          `json:"type"`
	Props    map[string]interface{} `json:"props,omitempty"`
	Styles   map[string]string      `json:"styles,omitempty"`
	Children []*Component           `json:"children,omitempty"`
}

// Page 页面，持有组件树的根序列
type Page struct {
	Id         string       `json:"id"`
	Name       string       `json:"name"`
	Components []*Component `json:"components"`
}

// ComponentUpdate 组件更新输入。非 nil 的字段会被合并到目标组件，
// Props 与 Styles 为整体替换而非深合并。
type ComponentUpdate struct {
	Type   *ComponentType         `json:"type"`
	Props  map[string]interface{} `json:"props"`
	Styles map[string]string      `json:"styles"`
}
