package handler

import (
	"net/http"

	"github.com/blues/ims/internal/event"
	"github.com/blues/ims/internal/logger"
	"github.com/blues/ims/internal/model"
	"github.com/gin-gonic/gin"
)

// WebhookHandler 支付回调处理器
type WebhookHandler struct {
	processor *event.PaymentProcessor
}

// NewWebhookHandler 创建支付回调处理器
func NewWebhookHandler(processor *event.PaymentProcessor) *WebhookHandler {
	return &WebhookHandler{processor: processor}
}

// HandlePaymentEvent 接收支付服务的异步回调，事件入协程池后立即返回
func (h *WebhookHandler) HandlePaymentEvent(c *gin.Context) {
	var ev event.PaymentEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if !model.ValidInvestmentStatus(ev.Status) {
		ErrorResponse(c, http.StatusBadRequest, "无效的投资状态")
		return
	}

	if err := h.processor.Submit(ev); err != nil {
		logger.Error("Failed to submit payment event: %v", err)
		ErrorResponse(c, http.StatusServiceUnavailable, "事件处理繁忙，请稍后重试")
		return
	}

	SuccessResponse(c, http.StatusAccepted, "事件已接收", nil)
}
