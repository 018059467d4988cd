package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product представляет товар в коин-маркете
type Product struct {
	ID          uuid.UUID      `json:"id" gorm:"type:text;primary_key"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	ImagePath   string         `json:"image_path"`
	CoinPrice   int            `json:"coin_price" gorm:"not null"`
	Stock       int            `json:"stock" gorm:"default:0"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Связи
	Likes    []ProductLike    `json:"likes,omitempty" gorm:"foreignKey:ProductID"`
	Comments []ProductComment `json:"comments,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductLike представляет лайк товара; коин начисляется только
// за первый лайк и при снятии не возвращается. Снятие лайка — мягкое
// удаление: строка хранит факт выплаты и при повторном лайке восстанавливается.
type ProductLike struct {
	ID          uuid.UUID      `json:"id" gorm:"type:text;primary_key"`
	ProductID   uuid.UUID      `json:"product_id" gorm:"type:text;not null;uniqueIndex:idx_product_like"`
	UserID      uuid.UUID      `json:"user_id" gorm:"type:text;not null;uniqueIndex:idx_product_like"`
	CoinAwarded bool           `json:"coin_awarded" gorm:"default:false"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
}

// ProductComment представляет комментарий к товару
type ProductComment struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:text;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:text;not null"`
	Content   string    `json:"content" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// ProductPurchase представляет покупку товара за коины
type ProductPurchase struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:text;not null;index"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:text;not null;index"`
	CoinsSpent  int       `json:"coins_spent" gorm:"not null"`
	IsDelivered bool      `json:"is_delivered" gorm:"default:false"`

	PurchasedAt time.Time `json:"purchased_at"`

	// Связи
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	User    User    `json:"-" gorm:"foreignKey:UserID"`
}
