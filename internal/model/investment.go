package model

import (
	"time"
)

// InvestmentModel 投资记录
type InvestmentModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InvestorId string `json:"investor_id" gorm:"not null;index;index:idx_investor_status"`
	ProjectId  int64  `json:"project_id" gorm:"not null;index;index:idx_investment_project_status"`

	// 金额为最小货币单位
	Amount   int64  `json:"amount" gorm:"not null"`
	Currency string `json:"currency" gorm:"default:'USD'"`

	Status InvestmentStatus `json:"status" gorm:"default:'pending';index:idx_investor_status;index:idx_investment_project_status"`

	// 支付信息
	PaymentMethod   PaymentMethod `json:"payment_method" gorm:"not null"`
	PaymentIntentId *string       `json:"payment_intent_id" gorm:"uniqueIndex"`
	TransactionId   *string       `json:"transaction_id" gorm:"uniqueIndex"`

	// 是否已把本笔投资计入融资账本，保证完成/退款的账本效果只应用一次
	LedgerApplied bool `json:"ledger_applied" gorm:"default:false"`

	Terms    InvestmentTerms    `json:"terms" gorm:"embedded;embeddedPrefix:terms_"`
	Metadata InvestmentMetadata `json:"metadata" gorm:"embedded;embeddedPrefix:meta_"`
}

// InvestmentTerms 投资条款
type InvestmentTerms struct {
	AgreementType    AgreementType `json:"agreement_type" gorm:"default:'equity'"`
	EquityPercentage float64       `json:"equity_percentage"`
	RevenueShare     float64       `json:"revenue_share"`
}

// InvestmentMetadata 投资元数据
type InvestmentMetadata struct {
	CompletedAt *time.Time `json:"completed_at"`
	RefundedAt  *time.Time `json:"refunded_at"`
	Notes       string     `json:"notes" gorm:"type:text"`
}

// InvestmentStatus 投资状态
type InvestmentStatus string

const (
	InvestmentStatusPending   InvestmentStatus = "pending"   // 待支付
	InvestmentStatusCompleted InvestmentStatus = "completed" // 已完成
	InvestmentStatusFailed    InvestmentStatus = "failed"    // 失败
	InvestmentStatusRefunded  InvestmentStatus = "refunded"  // 已退款
)

// ValidInvestmentStatus 检查投资状态是否合法
func ValidInvestmentStatus(s InvestmentStatus) bool {
	switch s {
	case InvestmentStatusPending, InvestmentStatusCompleted, InvestmentStatusFailed, InvestmentStatusRefunded:
		return true
	}
	return false
}

// PaymentMethod 支付方式
type PaymentMethod string

const (
	PaymentMethodStripe PaymentMethod = "stripe"
	PaymentMethodPaypal PaymentMethod = "paypal"
)

// ValidPaymentMethod 检查支付方式是否合法
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentMethodStripe || m == PaymentMethodPaypal
}

// AgreementType 协议类型
type AgreementType string

const (
	AgreementTypeEquity       AgreementType = "equity"
	AgreementTypeRevenueShare AgreementType = "revenue-share"
	AgreementTypeDonation     AgreementType = "donation"
	AgreementTypeLoan         AgreementType = "loan"
)

// ValidAgreementType 检查协议类型是否合法
func ValidAgreementType(t AgreementType) bool {
	switch t {
	case AgreementTypeEquity, AgreementTypeRevenueShare, AgreementTypeDonation, AgreementTypeLoan:
		return true
	}
	return false
}

// TableName 自定义表名
func (InvestmentModel) TableName() string {
	return "investment"
}
