package model

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"time"

	"gorm.io/gorm"
)

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Base carries the identity and timestamps shared by every stored record
type Base struct {
	ID        string    `gorm:"primaryKey;type:char(24)" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an id when the caller did not provide one
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = NewID()
	}
	return nil
}

// NewID returns a 24 character hex id: 4 bytes of unix seconds followed by
// 8 random bytes, so ids sort roughly by creation time.
func NewID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(b[4:]); err != nil {
		panic("model: reading random bytes: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}

// IsValidID reports whether id has the 24 hex character shape
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}
