package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Username    string `json:"username" gorm:"uniqueIndex"` // Stable handle used in profile URLs
	DisplayName string `json:"display_name"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	Password    string `json:"-"` // Store hashed password, ignore for JSON serialization
	// Link to Firebase User UID. Pointer so local accounts store NULL:
	// the unique index must not collide on absent links.
	FirebaseUID *string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
}

type SignupRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=50,alphanum"`
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
