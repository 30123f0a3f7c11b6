package payment

import (
	"fmt"

	"github.com/blues/ims/internal/model"
	"github.com/google/uuid"
)

// Intent 支付意向，ClientSecret 由前端用于完成支付
type Intent struct {
	Id           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// Provider 支付服务接口，由外部支付模块实现。
// 真实实现应创建 Stripe PaymentIntent 或 PayPal order 并返回 client secret。
type Provider interface {
	CreateIntent(method model.PaymentMethod, amount int64, currency string) (*Intent, error)
}

// StubProvider 占位支付实现，返回占位 client secret
type StubProvider struct{}

// NewStubProvider 创建占位支付实现
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

// CreateIntent 生成占位支付意向
func (s *StubProvider) CreateIntent(method model.PaymentMethod, amount int64, currency string) (*Intent, error) {
	if !model.ValidPaymentMethod(method) {
		return nil, fmt.Errorf("不支持的支付方式: %s", method)
	}
	return &Intent{
		Id:           fmt.Sprintf("pi_%s", uuid.NewString()),
		ClientSecret: "placeholder_client_secret",
	}, nil
}
