package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ctxKey string

// CtxUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden
// BaseModel hook'larına taşır.
const CtxUserIDKey ctxKey = "user_id"

// ContextWithUserID context'e işlemi yapan kullanıcıyı ekler.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, CtxUserIDKey, userID)
}

// UserIDFromContext context'teki kullanıcı ID'sini okur.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(CtxUserIDKey).(uint)
	return id, ok
}

// BaseModel tüm tablolarda ortak olan kimlik, zaman ve denetim kolonlarını taşır.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CreatedBy *uint `gorm:"index" json:"-"`
	UpdatedBy *uint `json:"-"`
	DeletedBy *uint `json:"-"`
}

// BeforeCreate context'teki kullanıcıyı CreatedBy/UpdatedBy olarak işler.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID, ok := UserIDFromContext(tx.Statement.Context); ok && userID != 0 {
		m.CreatedBy = &userID
		m.UpdatedBy = &userID
	}
	return nil
}

// BeforeUpdate context'teki kullanıcıyı UpdatedBy olarak işler.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID, ok := UserIDFromContext(tx.Statement.Context); ok && userID != 0 {
		m.UpdatedBy = &userID
	}
	return nil
}
