package model

import "time"

// RevokedToken stores the JTI of a JWT that must no longer be accepted
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JTI       string    `gorm:"column:jti;type:varchar(64);uniqueIndex;not null" json:"jti"`
	UserID    uint      `gorm:"column:usuario_id;index" json:"usuario_id"`
	Reason    string    `gorm:"column:motivo;type:varchar(50)" json:"motivo"` // logout, token_refresh
	ExpiresAt time.Time `gorm:"column:expira_en;index;not null" json:"expira_en"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:fk_tokens_revocados_usuario,OnDelete:CASCADE" json:"-"`
}

func (RevokedToken) TableName() string { return "tokens_revocados" }
