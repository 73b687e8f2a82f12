package worker

import (
	"context"
	"strings"

	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/provider"
	"github.com/storefront-api/internal/queue"
	"github.com/storefront-api/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
}

func (c *Consumer) handleOrderStatusNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_order_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderStatusNotifyPayload(task)
	if err != nil {
		logger.Warnw("worker_order_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(ctx, payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_notify_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_notify_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	receiver, err := c.OrderRepo.ResolveReceiverByOrderID(ctx, order.ID)
	if err != nil {
		logger.Warnw("worker_order_status_notify_fetch_receiver_failed", "order_id", order.ID, "error", err)
		return err
	}
	if receiver == nil || strings.TrimSpace(receiver.Email) == "" {
		logger.Debugw("worker_order_status_notify_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	input := buildOrderStatusEmailInput(order, payload)
	if c.EmailService == nil || !c.EmailService.Enabled() {
		logger.Infow("order_status_notify_logged",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"user_id", receiver.UserID,
			"status", input.Status,
			"event", input.Event,
		)
		return nil
	}
	if err := c.EmailService.SendOrderStatusEmail(receiver.Email, input, receiver.Locale); err != nil {
		logger.Warnw("worker_order_status_notify_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiver.Email,
			"status", input.Status,
			"error", err,
		)
		return err
	}
	return nil
}

// buildOrderStatusEmailInput 以任务载荷为准，缺省字段回退到订单当前数据
func buildOrderStatusEmailInput(order *models.Order, payload queue.OrderStatusNotifyPayload) service.OrderStatusEmailInput {
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	orderNo := strings.TrimSpace(payload.OrderNo)
	if orderNo == "" {
		orderNo = order.OrderNo
	}
	event := strings.TrimSpace(payload.Event)
	if event == "" {
		event = queue.OrderEventStatusChanged
	}
	return service.OrderStatusEmailInput{
		OrderNo: orderNo,
		Status:  status,
		Event:   event,
		Total:   order.TotalPrice,
	}
}
