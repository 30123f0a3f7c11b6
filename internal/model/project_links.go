package model

import (
	"time"
)

// ProjectLinksModel 项目外部链接（每个项目一条）
type ProjectLinksModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64 `json:"project_id" gorm:"not null;uniqueIndex"`

	Website string `json:"website"`

	// 应用商店
	IosAppStore     string `json:"ios_app_store"`
	AndroidAppStore string `json:"android_app_store"`

	// 代码仓库
	Github    string `json:"github"`
	Gitlab    string `json:"gitlab"`
	Bitbucket string `json:"bitbucket"`

	// 社交媒体
	Linkedin string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	Youtube  string `json:"youtube"`

	// 其它链接，JSON 数组 [{"label":"...","url":"..."}]
	Other string `json:"other" gorm:"type:text"`
}

// TableName 自定义表名
func (ProjectLinksModel) TableName() string {
	return "project_links"
}
