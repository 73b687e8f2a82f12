package constants

// 订单状态常量
const (
	OrderStatusUnfulfilled = "unfulfilled"
	OrderStatusInProgress  = "in_progress"
	OrderStatusDelivered   = "delivered"
	OrderStatusCancelled   = "cancelled"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 内置角色
const (
	RoleStaff   = "staff"
	RoleSupport = "support"
)

// 队列名称
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型
const (
	TaskOrderStatusNotify = "order:status_notify"
)

// 验证码场景
const (
	CaptchaSceneLogin = "login"
)

// 默认税率（价格 × 1.1）
const DefaultTaxRate = "0.10"
