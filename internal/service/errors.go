package service

import "errors"

// 错误分类，handler 依据分类映射业务状态码
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("resource not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")
)

// DomainError 领域错误，携带分类、国际化 key 与出错字段
type DomainError struct {
	kind  error
	key   string
	field string
	msg   string
	args  []interface{}
	base  *DomainError
}

func (e *DomainError) Error() string {
	return e.msg
}

// Is 支持 errors.Is 按分类匹配
func (e *DomainError) Is(target error) bool {
	return target == e.kind || (e.base != nil && target == e.base)
}

// Kind 错误分类
func (e *DomainError) Kind() error {
	return e.kind
}

// Key 国际化 key
func (e *DomainError) Key() string {
	return e.key
}

// Field 出错字段（仅校验错误）
func (e *DomainError) Field() string {
	return e.field
}

// Args 国际化参数
func (e *DomainError) Args() []interface{} {
	return e.args
}

// derive 基于已有错误派生新的 key 与参数，errors.Is 仍能匹配原错误
func (e *DomainError) derive(key string, args ...interface{}) *DomainError {
	return &DomainError{kind: e.kind, key: key, field: e.field, msg: e.msg, args: args, base: e}
}

func newValidationError(field, key, msg string) *DomainError {
	return &DomainError{kind: ErrValidation, key: key, field: field, msg: msg}
}

func newNotFoundError(key, msg string) *DomainError {
	return &DomainError{kind: ErrNotFound, key: key, msg: msg}
}

func newForbiddenError(key, msg string) *DomainError {
	return &DomainError{kind: ErrForbidden, key: key, msg: msg}
}

func newUnauthenticatedError(key, msg string) *DomainError {
	return &DomainError{kind: ErrUnauthenticated, key: key, msg: msg}
}

func newConflictError(key, msg string) *DomainError {
	return &DomainError{kind: ErrConflict, key: key, msg: msg}
}

// 校验错误
var (
	ErrCartEmpty              = newValidationError("cart_id", "error.cart_empty", "Cart is empty")
	ErrOrderCancelNotAllowed  = newValidationError("status", "error.order_cancel_not_allowed", "Order cannot be cancelled in its current state.")
	ErrOrderStatusInvalid     = newValidationError("status", "error.order_status_invalid", "invalid order status")
	ErrOrderCreatedRange      = newValidationError("created_from", "error.created_range_invalid", "created_from must not be after created_to")
	ErrQuantityInvalid        = newValidationError("quantity", "error.quantity_invalid", "quantity must be a positive integer")
	ErrStockInsufficient      = newValidationError("quantity", "error.stock_insufficient", "not enough stock")
	ErrProductNameRequired    = newValidationError("name", "error.name_required", "name is required")
	ErrProductPriceInvalid    = newValidationError("price", "error.price_negative", "Price could not be negative")
	ErrProductPriceFormat     = newValidationError("price", "error.price_invalid", "invalid price")
	ErrProductStockInvalid    = newValidationError("stock", "error.stock_negative", "stock could not be negative")
	ErrProductCategoryInvalid = newValidationError("category_id", "error.category_invalid", "category does not exist")
	ErrCategoryNameRequired   = newValidationError("name", "error.name_required", "name is required")
	ErrRatingInvalid          = newValidationError("rating", "error.rating_invalid", "rating must be between 1 and 5")
	ErrInvalidEmail           = newValidationError("email", "error.email_invalid", "invalid email")
	ErrEmailExists            = newValidationError("email", "error.email_exists", "email already registered")
	ErrWeakPassword           = newValidationError("password", "error.password_min_length", "weak password")
	ErrCaptchaRequired        = newValidationError("captcha_code", "error.captcha_required", "captcha required")
	ErrUserStatusInvalid      = newValidationError("status", "error.user_status_invalid", "invalid user status")
	ErrCaptchaInvalid         = newValidationError("captcha_code", "error.captcha_invalid", "captcha invalid")
)

// 资源不存在
var (
	ErrCategoryNotFound = newNotFoundError("error.category_not_found", "category not found")
	ErrProductNotFound  = newNotFoundError("error.product_not_found", "product not found")
	ErrCartNotFound     = newNotFoundError("error.cart_not_found", "cart not found")
	ErrCartItemNotFound = newNotFoundError("error.cart_item_not_found", "cart item not found")
	ErrOrderNotFound    = newNotFoundError("error.order_not_found", "order not found")
	ErrReviewNotFound   = newNotFoundError("error.review_not_found", "review not found")
	ErrUserNotFound     = newNotFoundError("error.user_not_found", "user not found")
	ErrCaptchaDisabled  = newNotFoundError("error.captcha_disabled", "captcha disabled")
)

// 权限与认证
var (
	ErrStaffRequired      = newForbiddenError("error.staff_required", "staff permission required")
	ErrReviewAuthorOnly   = newForbiddenError("error.review_author_only", "only the author can change this review")
	ErrUserDisabled       = newForbiddenError("error.user_disabled", "user disabled")
	ErrNotAuthenticated   = newUnauthenticatedError("error.unauthorized", "authentication required")
	ErrInvalidCredentials = newUnauthenticatedError("error.invalid_credentials", "invalid email or password")
	ErrTokenInvalid       = newUnauthenticatedError("error.token_invalid", "invalid token")
)

// 状态冲突
var (
	ErrCategoryInUse = newConflictError("error.category_in_use", "category still has products")
)

// 基础设施错误
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// ErrNotOwner 资源不属于当前用户，由各服务转换为对应的 NotFound
var ErrNotOwner = errors.New("resource not owned by actor")
