package queue

import (
	"encoding/json"

	"github.com/storefront-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusNotify 订单状态通知任务
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
)

// 订单通知事件
const (
	OrderEventPlaced        = "placed"
	OrderEventCancelled     = "cancelled"
	OrderEventStatusChanged = "status_changed"
)

// OrderStatusNotifyPayload 订单状态通知任务载荷
type OrderStatusNotifyPayload struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
	Status  string `json:"status"`
	Event   string `json:"event"`
}

// NewOrderStatusNotifyTask 创建订单状态通知任务
func NewOrderStatusNotifyTask(payload OrderStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotify, body), nil
}

// ParseOrderStatusNotifyPayload 解析订单状态通知任务载荷
func ParseOrderStatusNotifyPayload(task *asynq.Task) (OrderStatusNotifyPayload, error) {
	var payload OrderStatusNotifyPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
