package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoNodePage() *Page {
	return &Page{
		Id:   "page-1",
		Name: "Landing",
		Components: []*Component{
			{
				Id:   "root",
				Type: ComponentContainer,
				Children: []*Component{
					{
						Id:    "greeting",
						Type:  ComponentText,
						Props: map[string]interface{}{"content": "Hi"},
					},
				},
			},
		},
	}
}

func TestExportHTML(t *testing.T) {
	page := twoNodePage()

	code, err := Export(page, FormatHTML)
	require.NoError(t, err)

	expected := `<!DOCTYPE html>
<html>
<head>
  <title>Landing</title>
</head>
<body>
  <container>
    <text content="Hi" />
  </container>
</body>
</html>
`
	assert.Equal(t, expected, code)
}

func TestExportReact(t *testing.T) {
	page := &Page{
		Id:   "page-1",
		Name: "landing page",
		Components: []*Component{
			{
				Id:     "root",
				Type:   ComponentContainer,
				Styles: map[string]string{"background": "blue"},
				Children: []*Component{
					{
						Id:    "greeting",
						Type:  ComponentText,
						Props: map[string]interface{}{"size": 14, "content": "Hi"},
					},
				},
			},
		},
	}

	code, err := Export(page, FormatReact)
	require.NoError(t, err)

	expected := `export default function LandingPage() {
  return (
    <div>
      <container style={{"background":"blue"}}>
        <text content="Hi" size="14" />
      </container>
    </div>
  );
}
`
	assert.Equal(t, expected, code)
}

func TestExportHTMLStyles(t *testing.T) {
	page := &Page{
		Name: "Styled",
		Components: []*Component{
			{
				Id:     "a",
				Type:   ComponentButton,
				Props:  map[string]interface{}{"label": "Go", "disabled": false},
				Styles: map[string]string{"margin": "4px", "color": "red"},
			},
		},
	}

	code, err := Export(page, FormatHTML)
	require.NoError(t, err)

	// 属性与样式均按键名排序
	assert.Contains(t, code, `  <button disabled="false" label="Go" style="color: red; margin: 4px" />`)
}

// 导出是纯函数：不修改树，重复导出字节级相同
func TestExportDeterministic(t *testing.T) {
	page := &Page{
		Name: "Landing",
		Components: []*Component{
			{
				Id:   "root",
				Type: ComponentGrid,
				Props: map[string]interface{}{
					"cols": 3, "gap": 8, "wrap": true, "label": "区块",
				},
				Styles: map[string]string{
					"padding": "8px", "margin": "0", "border": "none",
				},
				Children: []*Component{
					{Id: "c1", Type: ComponentCard, Props: map[string]interface{}{"title": "一"}},
					{Id: "c2", Type: ComponentCard, Props: map[string]interface{}{"title": "二"}},
				},
			},
		},
	}

	for _, format := range []ExportFormat{FormatReact, FormatHTML} {
		first, err := Export(page, format)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := Export(page, format)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}

	// 树未被修改
	assert.Len(t, page.Components[0].Children, 2)
	assert.Equal(t, 3, page.Components[0].Props["cols"])
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := Export(twoNodePage(), "vue")
	require.Error(t, err)
}
