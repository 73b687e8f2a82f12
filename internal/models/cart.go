package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart 购物车（每个用户至多一个）
type Cart struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"` // 主键（UUID）
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`   // 用户ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`               // 创建时间

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// BeforeCreate 生成 UUID 主键
func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
