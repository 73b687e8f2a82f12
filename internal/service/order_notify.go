package service

import (
	"strings"

	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/queue"
)

// enqueueOrderStatusNotify 入队订单状态通知任务，返回 skipped 表示未入队。
func enqueueOrderStatusNotify(queueClient *queue.Client, order *models.Order, event string) (skipped bool, err error) {
	if queueClient == nil || !queueClient.Enabled() || order == nil || order.ID == 0 {
		return true, nil
	}
	if err := queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: order.ID,
		OrderNo: order.OrderNo,
		Status:  strings.TrimSpace(order.Status),
		Event:   event,
	}); err != nil {
		return false, err
	}
	return false, nil
}

// notifyOrderStatus 入队失败只记录日志，不影响主流程
func notifyOrderStatus(queueClient *queue.Client, order *models.Order, event string) {
	skipped, err := enqueueOrderStatusNotify(queueClient, order, event)
	if err != nil {
		logger.Warnw("order_enqueue_status_notify_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"event", event,
			"error", err,
		)
		return
	}
	if skipped {
		logger.Debugw("order_status_notify_skipped", "order_id", order.ID, "event", event)
	}
}
