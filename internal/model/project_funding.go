package model

import (
	"time"
)

// ProjectFundingModel 项目融资配置与进度（每个项目一条）
type ProjectFundingModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64 `json:"project_id" gorm:"not null;uniqueIndex"`

	// 融资信息（金额为最小货币单位）
	FundingGoal  int64  `json:"funding_goal" gorm:"not null" binding:"required,min=0"`
	AmountRaised int64  `json:"amount_raised" gorm:"default:0"`
	Currency     string `json:"currency" gorm:"default:'USD'"`

	// 投资者数量，与已完成/已退款的投资同步增减
	InvestorCount int64 `json:"investor_count" gorm:"default:0"`

	// 投资限额，MaxInvestment 为 0 表示不限
	MinInvestment int64 `json:"min_investment" gorm:"default:100"`
	MaxInvestment int64 `json:"max_investment" gorm:"default:0"`

	// 融资类型与条款
	FundingType        FundingType `json:"funding_type" gorm:"default:'equity'"`
	TermsAndConditions string      `json:"terms_and_conditions" gorm:"type:text"`
	DeadlineDate       *time.Time  `json:"deadline_date"`

	// 关联
	Milestones []FundingMilestoneModel `json:"milestones,omitempty" gorm:"foreignKey:FundingId"`
}

// FundingType 融资类型
type FundingType string

const (
	FundingTypeEquity       FundingType = "equity"        // 股权
	FundingTypeRevenueShare FundingType = "revenue-share" // 收益分成
	FundingTypeDonation     FundingType = "donation"      // 捐赠
	FundingTypeLoan         FundingType = "loan"          // 借贷
	FundingTypeMixed        FundingType = "mixed"         // 混合
)

// ValidFundingType 检查融资类型是否合法
func ValidFundingType(t FundingType) bool {
	switch t {
	case FundingTypeEquity, FundingTypeRevenueShare, FundingTypeDonation, FundingTypeLoan, FundingTypeMixed:
		return true
	}
	return false
}

// TableName 自定义表名
func (ProjectFundingModel) TableName() string {
	return "project_funding"
}

// FundingMilestoneModel 融资里程碑（按 SortOrder 有序）
type FundingMilestoneModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FundingId    int64      `json:"funding_id" gorm:"not null;index"`
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description" gorm:"type:text"`
	TargetAmount int64      `json:"target_amount" gorm:"not null"`
	Reached      bool       `json:"reached" gorm:"default:false"`
	ReachedAt    *time.Time `json:"reached_at"`
	SortOrder    int        `json:"sort_order" gorm:"default:0"`
}

// TableName 自定义表名
func (FundingMilestoneModel) TableName() string {
	return "funding_milestone"
}
