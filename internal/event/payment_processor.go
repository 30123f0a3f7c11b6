package event

import (
	"context"

	"github.com/blues/ims/internal/logger"
	"github.com/blues/ims/internal/logic"
	"github.com/blues/ims/internal/model"
	"github.com/panjf2000/ants/v2"
)

// PaymentEvent 支付服务回调事件
type PaymentEvent struct {
	InvestmentId  int64                  `json:"investment_id" binding:"required"`
	Status        model.InvestmentStatus `json:"status" binding:"required"`
	TransactionId string                 `json:"transaction_id"`
}

// PaymentProcessor 异步处理支付回调事件的处理器，
// 事件提交到协程池后由投资业务逻辑应用状态转换。
type PaymentProcessor struct {
	pool            *ants.Pool
	investmentLogic *logic.InvestmentLogic
	ctx             context.Context
	cancel          context.CancelFunc
}

// NewPaymentProcessor 创建支付回调处理器
func NewPaymentProcessor(investmentLogic *logic.InvestmentLogic, poolSize int) (*PaymentProcessor, error) {
	if poolSize <= 0 {
		poolSize = 8
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &PaymentProcessor{
		pool:            pool,
		investmentLogic: investmentLogic,
		ctx:             ctx,
		cancel:          cancel,
	}, nil
}

// Submit 提交事件到协程池异步处理
func (p *PaymentProcessor) Submit(ev PaymentEvent) error {
	return p.pool.Submit(func() {
		if p.ctx.Err() != nil {
			return
		}
		p.process(ev)
	})
}

// process 处理单个支付事件
func (p *PaymentProcessor) process(ev PaymentEvent) {
	logger.Info("Processing payment event for investment %d: %s", ev.InvestmentId, ev.Status)

	_, err := p.investmentLogic.UpdateInvestmentStatus(ev.InvestmentId, ev.Status, ev.TransactionId)
	if err != nil {
		logger.Error("Failed to process payment event for investment %d: %v", ev.InvestmentId, err)
		return
	}

	logger.Info("Payment event processed for investment %d", ev.InvestmentId)
}

// Stop 停止处理器并释放协程池
func (p *PaymentProcessor) Stop() {
	p.cancel()
	p.pool.Release()
	logger.Info("Payment processor stopped")
}
