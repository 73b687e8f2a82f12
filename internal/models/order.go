package models

import "time"

// Order 订单表
type Order struct {
	ID         uint       `gorm:"primarykey" json:"id"`                                     // 主键
	OrderNo    string     `gorm:"uniqueIndex;not null" json:"order_no"`                     // 订单编号
	UserID     uint       `gorm:"index;not null" json:"user_id"`                            // 用户ID
	Status     string     `gorm:"index;not null" json:"status"`                             // 订单状态
	TotalPrice Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 订单总额
	CanceledAt *time.Time `gorm:"index" json:"canceled_at"`                                 // 取消时间
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt  time.Time  `gorm:"index" json:"updated_at"`                                  // 更新时间

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
