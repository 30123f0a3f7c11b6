package model

import (
	"time"
)

// ProjectModel 项目模型
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Name        string `json:"name" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	Type        string `json:"type" gorm:"index"`
	ImageURL    string `json:"image_url"`

	// 所有者信息（由外部认证模块提供的不透明标识）
	OwnerId string `json:"owner_id" gorm:"not null;index"`

	// 状态
	Status            ProjectStatus `json:"status" gorm:"default:'draft';index"`
	SeekingInvestment bool          `json:"seeking_investment" gorm:"default:false;index"`
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"     // 草稿
	ProjectStatusPublished ProjectStatus = "published" // 已发布
	ProjectStatusArchived  ProjectStatus = "archived"  // 已归档
)

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}
