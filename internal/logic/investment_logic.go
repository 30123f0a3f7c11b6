package logic

import (
	"errors"
	"strings"
	"time"

	"github.com/blues/ims/internal/model"
	"github.com/blues/ims/internal/payment"
	"gorm.io/gorm"
)

// CreateInvestmentInput 创建投资输入
type CreateInvestmentInput struct {
	ProjectId        int64               `json:"project_id" binding:"required"`
	Amount           int64               `json:"amount" binding:"required"`
	Currency         string              `json:"currency"`
	PaymentMethod    model.PaymentMethod `json:"payment_method" binding:"required"`
	AgreementType    model.AgreementType `json:"agreement_type"`
	EquityPercentage float64             `json:"equity_percentage"`
	RevenueShare     float64             `json:"revenue_share"`
}

// CreateInvestmentResult 创建投资结果，包含支付初始化句柄
type CreateInvestmentResult struct {
	Investment *model.InvestmentModel `json:"investment"`
	// 由外部支付服务替换为真实的 client secret
	ClientSecret string `json:"client_secret"`
}

// InvestorStats 投资者统计
type InvestorStats struct {
	TotalInvested        int64 `json:"total_invested"`
	ActiveInvestments    int64 `json:"active_investments"`
	CompletedInvestments int64 `json:"completed_investments"`
	PendingInvestments   int64 `json:"pending_investments"`
}

// DashboardEntry 仪表盘中的单笔投资，附项目摘要
type DashboardEntry struct {
	Investment model.InvestmentModel `json:"investment"`
	Project    *model.ProjectModel   `json:"project"`
}

// InvestmentDetail 投资详情，附项目融资配置与链接
type InvestmentDetail struct {
	Investment model.InvestmentModel      `json:"investment"`
	Project    *model.ProjectModel        `json:"project"`
	Funding    *model.ProjectFundingModel `json:"funding"`
	Links      *model.ProjectLinksModel   `json:"links"`
}

// statusTransitions 投资状态机：当前状态 -> 允许的下一状态。
// failed 与 refunded 为终态，completed 只能转为 refunded。
var statusTransitions = map[model.InvestmentStatus][]model.InvestmentStatus{
	model.InvestmentStatusPending: {
		model.InvestmentStatusCompleted,
		model.InvestmentStatusFailed,
		model.InvestmentStatusRefunded,
	},
	model.InvestmentStatusCompleted: {
		model.InvestmentStatusRefunded,
	},
}

// canTransition 检查状态转换是否合法
func canTransition(from, to model.InvestmentStatus) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// InvestmentLogic 投资业务逻辑
type InvestmentLogic struct {
	db       *gorm.DB
	provider payment.Provider
}

// NewInvestmentLogic 创建投资业务逻辑
func NewInvestmentLogic(db *gorm.DB, provider payment.Provider) *InvestmentLogic {
	return &InvestmentLogic{db: db, provider: provider}
}

// CreateInvestment 创建投资并发起支付，初始状态为 pending
func (i *InvestmentLogic) CreateInvestment(investorId string, input *CreateInvestmentInput) (*CreateInvestmentResult, error) {
	if err := i.validateCreateInput(investorId, input); err != nil {
		return nil, err
	}

	// 项目必须已发布且正在寻求投资
	var project model.ProjectModel
	err := i.db.Where("id = ? AND status = ? AND seeking_investment = ?",
		input.ProjectId, model.ProjectStatusPublished, true).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("项目不存在或未开放投资")
		}
		return nil, NewStoreError("获取项目失败", err)
	}

	// 项目必须已配置融资信息
	var funding model.ProjectFundingModel
	if err := i.db.Where("project_id = ?", input.ProjectId).First(&funding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("项目融资信息不存在")
		}
		return nil, NewStoreError("获取融资配置失败", err)
	}

	// 检查投资限额
	if input.Amount < funding.MinInvestment {
		return nil, NewValidationError("投资金额低于最小限额 %d %s", funding.MinInvestment, funding.Currency)
	}
	if funding.MaxInvestment > 0 && input.Amount > funding.MaxInvestment {
		return nil, NewValidationError("投资金额超过最大限额 %d %s", funding.MaxInvestment, funding.Currency)
	}

	currency := funding.Currency
	if input.Currency != "" {
		currency = strings.ToUpper(input.Currency)
	}

	agreementType := input.AgreementType
	if agreementType == "" {
		agreementType = model.AgreementTypeEquity
	}

	// 向支付服务发起支付意向
	intent, err := i.provider.CreateIntent(input.PaymentMethod, input.Amount, currency)
	if err != nil {
		return nil, NewStoreError("发起支付失败", err)
	}

	investment := model.InvestmentModel{
		InvestorId:      investorId,
		ProjectId:       input.ProjectId,
		Amount:          input.Amount,
		Currency:        currency,
		Status:          model.InvestmentStatusPending,
		PaymentMethod:   input.PaymentMethod,
		PaymentIntentId: &intent.Id,
		Terms: model.InvestmentTerms{
			AgreementType:    agreementType,
			EquityPercentage: input.EquityPercentage,
			RevenueShare:     input.RevenueShare,
		},
	}

	if err := i.db.Create(&investment).Error; err != nil {
		return nil, NewStoreError("创建投资记录失败", err)
	}

	return &CreateInvestmentResult{
		Investment:   &investment,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// UpdateInvestmentStatus 更新投资状态并应用账本效果。
// 投资状态写入与融资账本增减在同一事务内完成，账本效果由
// ledger_applied 标志保证每笔投资至多应用一次。
func (i *InvestmentLogic) UpdateInvestmentStatus(investmentId int64, newStatus model.InvestmentStatus, transactionId string) (*model.InvestmentModel, error) {
	if !model.ValidInvestmentStatus(newStatus) {
		return nil, NewValidationError("无效的投资状态: %s", newStatus)
	}

	var investment model.InvestmentModel
	if err := i.db.First(&investment, investmentId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("投资记录不存在")
		}
		return nil, NewStoreError("获取投资记录失败", err)
	}

	if !canTransition(investment.Status, newStatus) {
		return nil, NewConflictError("投资状态不能从 %s 转换为 %s", investment.Status, newStatus)
	}

	now := time.Now()

	tx := i.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	updates := map[string]interface{}{
		"status": newStatus,
	}
	if transactionId != "" {
		updates["transaction_id"] = transactionId
	}

	switch newStatus {
	case model.InvestmentStatusCompleted:
		updates["meta_completed_at"] = &now
		if !investment.LedgerApplied {
			if err := i.applyCompletion(tx, investment.ProjectId, investment.Amount); err != nil {
				tx.Rollback()
				return nil, err
			}
			updates["ledger_applied"] = true
		}
	case model.InvestmentStatusRefunded:
		updates["meta_refunded_at"] = &now
		// 只有计入过账本的投资才需要冲销
		if investment.LedgerApplied {
			if err := i.applyRefund(tx, investment.ProjectId, investment.Amount); err != nil {
				tx.Rollback()
				return nil, err
			}
			updates["ledger_applied"] = false
		}
	}

	if err := tx.Model(&investment).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, NewStoreError("更新投资状态失败", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, NewStoreError("提交投资状态失败", err)
	}

	if err := i.db.First(&investment, investmentId).Error; err != nil {
		return nil, NewStoreError("获取投资记录失败", err)
	}

	return &investment, nil
}

// applyCompletion 投资完成入账：amount_raised += amount, investor_count += 1
func (i *InvestmentLogic) applyCompletion(tx *gorm.DB, projectId int64, amount int64) error {
	err := tx.Model(&model.ProjectFundingModel{}).
		Where("project_id = ?", projectId).
		Updates(map[string]interface{}{
			"amount_raised":  gorm.Expr("amount_raised + ?", amount),
			"investor_count": gorm.Expr("investor_count + 1"),
		}).Error
	if err != nil {
		return NewStoreError("更新融资进度失败", err)
	}
	return nil
}

// applyRefund 投资退款冲销：amount_raised -= amount, investor_count -= 1
func (i *InvestmentLogic) applyRefund(tx *gorm.DB, projectId int64, amount int64) error {
	err := tx.Model(&model.ProjectFundingModel{}).
		Where("project_id = ?", projectId).
		Updates(map[string]interface{}{
			"amount_raised":  gorm.Expr("amount_raised - ?", amount),
			"investor_count": gorm.Expr("investor_count - 1"),
		}).Error
	if err != nil {
		return NewStoreError("更新融资进度失败", err)
	}
	return nil
}

// GetInvestorDashboard 获取投资者仪表盘：全部投资记录及统计信息
func (i *InvestmentLogic) GetInvestorDashboard(investorId string) ([]DashboardEntry, *InvestorStats, error) {
	var investments []model.InvestmentModel
	if err := i.db.Where("investor_id = ?", investorId).
		Order("created_at DESC").
		Find(&investments).Error; err != nil {
		return nil, nil, NewStoreError("获取投资记录失败", err)
	}

	// 批量加载项目摘要
	projectIds := make([]int64, 0, len(investments))
	for _, inv := range investments {
		projectIds = append(projectIds, inv.ProjectId)
	}

	projectMap := make(map[int64]*model.ProjectModel)
	if len(projectIds) > 0 {
		var projects []model.ProjectModel
		if err := i.db.Where("id IN ?", projectIds).Find(&projects).Error; err != nil {
			return nil, nil, NewStoreError("获取项目列表失败", err)
		}
		for idx := range projects {
			projectMap[projects[idx].Id] = &projects[idx]
		}
	}

	entries := make([]DashboardEntry, 0, len(investments))
	stats := &InvestorStats{}
	for _, inv := range investments {
		entries = append(entries, DashboardEntry{
			Investment: inv,
			Project:    projectMap[inv.ProjectId],
		})

		switch inv.Status {
		case model.InvestmentStatusCompleted:
			stats.TotalInvested += inv.Amount
			stats.CompletedInvestments++
			// 已完成即视为活跃投资
			stats.ActiveInvestments++
		case model.InvestmentStatusPending:
			stats.PendingInvestments++
		}
	}

	return entries, stats, nil
}

// GetInvestment 获取单笔投资详情，必须属于该投资者
func (i *InvestmentLogic) GetInvestment(investmentId int64, investorId string) (*InvestmentDetail, error) {
	var investment model.InvestmentModel
	err := i.db.Where("id = ? AND investor_id = ?", investmentId, investorId).First(&investment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("投资记录不存在")
		}
		return nil, NewStoreError("获取投资记录失败", err)
	}

	detail := &InvestmentDetail{Investment: investment}

	var project model.ProjectModel
	if err := i.db.First(&project, investment.ProjectId).Error; err == nil {
		detail.Project = &project
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewStoreError("获取项目失败", err)
	}

	var funding model.ProjectFundingModel
	err = i.db.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("project_id = ?", investment.ProjectId).First(&funding).Error
	if err == nil {
		detail.Funding = &funding
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewStoreError("获取融资配置失败", err)
	}

	var links model.ProjectLinksModel
	err = i.db.Where("project_id = ?", investment.ProjectId).First(&links).Error
	if err == nil {
		detail.Links = &links
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewStoreError("获取项目链接失败", err)
	}

	return detail, nil
}

// validateCreateInput 验证创建投资输入
func (i *InvestmentLogic) validateCreateInput(investorId string, input *CreateInvestmentInput) error {
	if investorId == "" {
		return NewValidationError("投资者不能为空")
	}
	if input.ProjectId == 0 {
		return NewValidationError("项目ID不能为空")
	}
	if input.Amount <= 0 {
		return NewValidationError("投资金额必须大于0")
	}
	if !model.ValidPaymentMethod(input.PaymentMethod) {
		return NewValidationError("无效的支付方式: %s", input.PaymentMethod)
	}
	if input.AgreementType != "" && !model.ValidAgreementType(input.AgreementType) {
		return NewValidationError("无效的协议类型: %s", input.AgreementType)
	}
	if input.EquityPercentage < 0 || input.EquityPercentage > 100 {
		return NewValidationError("股权比例必须在0-100之间")
	}
	if input.RevenueShare < 0 || input.RevenueShare > 100 {
		return NewValidationError("收益分成比例必须在0-100之间")
	}
	return nil
}
