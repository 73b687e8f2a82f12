package service

import (
	"strings"

	"github.com/storefront-api/internal/constants"
)

// allowedTransitions 订单状态机（店员 update_status 不受此限制）
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusUnfulfilled: {
		constants.OrderStatusInProgress: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusInProgress: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusDelivered: {},
	constants.OrderStatusCancelled: {},
}

// cancellableStatuses 允许取消的订单状态
var cancellableStatuses = []string{
	constants.OrderStatusUnfulfilled,
	constants.OrderStatusInProgress,
}

func normalizeOrderStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

func isValidOrderStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}

func isTransitionAllowed(current, target string) bool {
	if current == target {
		return true
	}
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}
