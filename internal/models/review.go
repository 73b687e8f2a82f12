package models

import "time"

// Review 商品评价
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`             // 主键
	ProductID uint      `gorm:"index;not null" json:"product_id"` // 商品ID
	UserID    uint      `gorm:"index;not null" json:"user_id"`    // 评价用户ID
	Rating    int       `gorm:"not null" json:"rating"`           // 评分 1-5
	Comment   string    `gorm:"type:text" json:"comment"`         // 评价内容
	CreatedAt time.Time `gorm:"index" json:"created_at"`          // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                       // 更新时间
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
