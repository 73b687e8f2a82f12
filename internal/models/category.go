package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 分类表
type Category struct {
	ID           uint           `gorm:"primarykey" json:"id"`                   // 主键
	Name         string         `gorm:"type:varchar(255);not null" json:"name"` // 名称
	Description  string         `gorm:"type:text" json:"description"`           // 描述
	ProductCount int64          `gorm:"->;-:migration" json:"product_count"`    // 商品数量（查询时聚合，不落库）
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                             // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
