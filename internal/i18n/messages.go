package i18n

var messages = map[string]map[string]string{
	LocaleZH: {
		"error.bad_request":              "请求参数错误",
		"error.unauthorized":             "未登录或登录已过期",
		"error.forbidden":                "无权限执行该操作",
		"error.not_found":                "资源不存在",
		"error.conflict":                 "资源状态冲突",
		"error.rate_limit_unavailable":   "限流服务暂不可用",
		"error.too_many_requests":        "请求过于频繁，请 %d 秒后再试",
		"error.internal_error":           "服务器内部错误",
		"error.validation":               "数据校验失败",
		"error.invalid_id":               "无效的ID",
		"error.user_id_invalid":          "用户ID无效",
		"error.user_id_type_invalid":     "用户ID类型错误",
		"error.token_invalid":            "登录凭证无效",
		"error.token_revoked":            "登录凭证已失效，请重新登录",
		"error.user_disabled":            "账号已被禁用",
		"error.login_too_many":           "登录尝试过多，请 %d 秒后再试",
		"error.invalid_credentials":      "邮箱或密码错误",
		"error.email_invalid":            "邮箱格式不正确",
		"error.email_exists":             "邮箱已被注册",
		"error.password_min_length":      "密码长度至少为 %d 位",
		"error.password_require_upper":   "密码需包含大写字母",
		"error.password_require_lower":   "密码需包含小写字母",
		"error.password_require_number":  "密码需包含数字",
		"error.password_require_special": "密码需包含特殊字符",
		"error.captcha_required":         "请输入验证码",
		"error.captcha_invalid":          "验证码错误或已过期",
		"error.captcha_generate_failed":  "验证码生成失败",
		"error.name_required":            "名称不能为空",
		"error.price_negative":           "价格不能为负数",
		"error.price_invalid":            "价格格式不正确",
		"error.stock_negative":           "库存不能为负数",
		"error.category_invalid":         "分类不存在",
		"error.category_in_use":          "分类下仍有商品，无法删除",
		"error.category_not_found":       "分类不存在",
		"error.product_not_found":        "商品不存在",
		"error.cart_not_found":           "购物车不存在",
		"error.cart_item_not_found":      "购物车商品不存在",
		"error.cart_empty":               "购物车为空",
		"error.quantity_invalid":         "数量必须为正整数",
		"error.stock_insufficient":       "库存不足",
		"error.order_not_found":          "订单不存在",
		"error.order_cancel_not_allowed": "当前状态的订单无法取消",
		"error.order_status_invalid":     "订单状态无效",
		"error.created_range_invalid":    "开始时间不能晚于结束时间",
		"error.date_invalid":             "日期格式无效",
		"error.review_not_found":         "评价不存在",
		"error.rating_invalid":           "评分必须在 1 到 5 之间",
		"error.review_author_only":       "只能修改自己的评价",
		"error.user_not_found":           "用户不存在",
		"error.staff_required":           "需要店员权限",
		"error.user_status_invalid":      "用户状态无效",
		"error.auth_header_missing":      "缺少认证信息",
		"error.auth_header_invalid":      "认证信息格式错误",
		"error.jwt_secret_missing":       "服务端未配置登录密钥",
		"error.captcha_disabled":         "验证码未启用",

		"order.status.unfulfilled": "待处理",
		"order.status.in_progress": "处理中",
		"order.status.delivered":   "已送达",
		"order.status.cancelled":   "已取消",

		"email.order_status.subject":   "订单状态更新：%s",
		"email.order_status.body":      "您的订单状态已更新。\n\n订单号：%s\n状态：%s\n金额：%s",
		"email.order_status.body_new":  "我们已收到您的订单。\n\n订单号：%s\n状态：%s\n金额：%s",
		"email.order_status.body_gone": "订单已取消。\n\n订单号：%s\n状态：%s\n金额：%s",
	},
	LocaleEN: {
		"error.bad_request":              "Invalid request",
		"error.unauthorized":             "Authentication required",
		"error.forbidden":                "You do not have permission to perform this action",
		"error.not_found":                "Not found",
		"error.conflict":                 "Resource state conflict",
		"error.rate_limit_unavailable":   "Rate limiter unavailable",
		"error.too_many_requests":        "Too many requests, please retry in %d seconds",
		"error.internal_error":           "Internal server error",
		"error.validation":               "Validation failed",
		"error.invalid_id":               "Invalid id",
		"error.user_id_invalid":          "Invalid user id",
		"error.user_id_type_invalid":     "Invalid user id type",
		"error.token_invalid":            "Invalid token",
		"error.token_revoked":            "Token has been revoked, please sign in again",
		"error.user_disabled":            "Account is disabled",
		"error.login_too_many":           "Too many login attempts, please retry in %d seconds",
		"error.invalid_credentials":      "Invalid email or password",
		"error.email_invalid":            "Invalid email address",
		"error.email_exists":             "Email is already registered",
		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a number",
		"error.password_require_special": "Password must contain a special character",
		"error.captcha_required":         "Captcha is required",
		"error.captcha_invalid":          "Captcha is invalid or expired",
		"error.captcha_generate_failed":  "Failed to generate captcha",
		"error.name_required":            "Name is required",
		"error.price_negative":           "Price could not be negative",
		"error.price_invalid":            "Invalid price",
		"error.stock_negative":           "Stock could not be negative",
		"error.category_invalid":         "Category does not exist",
		"error.category_in_use":          "Category still has products",
		"error.category_not_found":       "Category not found",
		"error.product_not_found":        "Product not found",
		"error.cart_not_found":           "Cart not found",
		"error.cart_item_not_found":      "Cart item not found",
		"error.cart_empty":               "Cart is empty",
		"error.quantity_invalid":         "Quantity must be a positive integer",
		"error.stock_insufficient":       "Not enough stock",
		"error.order_not_found":          "Order not found",
		"error.order_cancel_not_allowed": "Order cannot be cancelled in its current state.",
		"error.order_status_invalid":     "Invalid order status",
		"error.created_range_invalid":    "created_from must not be after created_to",
		"error.date_invalid":             "Invalid date, use YYYY-MM-DD or RFC3339",
		"error.review_not_found":         "Review not found",
		"error.rating_invalid":           "Rating must be between 1 and 5",
		"error.review_author_only":       "Only the author can change this review",
		"error.user_not_found":           "User not found",
		"error.staff_required":           "Staff permission required",
		"error.user_status_invalid":      "Invalid user status",
		"error.auth_header_missing":      "Missing authorization header",
		"error.auth_header_invalid":      "Invalid authorization header",
		"error.jwt_secret_missing":       "JWT secret is not configured",
		"error.captcha_disabled":         "Captcha is disabled",

		"order.status.unfulfilled": "Unfulfilled",
		"order.status.in_progress": "In progress",
		"order.status.delivered":   "Delivered",
		"order.status.cancelled":   "Cancelled",

		"email.order_status.subject":   "Order status updated: %s",
		"email.order_status.body":      "Your order status has changed.\n\nOrder No: %s\nStatus: %s\nTotal: %s",
		"email.order_status.body_new":  "We have received your order.\n\nOrder No: %s\nStatus: %s\nTotal: %s",
		"email.order_status.body_gone": "The order has been cancelled.\n\nOrder No: %s\nStatus: %s\nTotal: %s",
	},
}
