package validator

import (
	"net/mail"
	"strings"

	"storefront/internal/usecase"
)

// パスワード最低文字数
const MinPasswordLength = 8

type AuthValidator struct{}

func NewAuthValidator() *AuthValidator {
	return &AuthValidator{}
}

// サインアップの入力を検証
func (v *AuthValidator) ValidateRegister(name string, email string, password string) error {
	// 必須チェック
	if strings.TrimSpace(name) == "" || email == "" || password == "" {
		return usecase.ErrInvalidInput.WithMessage("name, email and password are required")
	}
	if len(name) > 255 {
		return usecase.ErrInvalidInput.WithMessage("name too long")
	}

	if !isValidEmailFormat(email) {
		return usecase.ErrInvalidEmail
	}

	if len(password) < MinPasswordLength {
		return usecase.ErrPasswordTooShort
	}

	// よくある弱いパスワードの拒否
	if isWeakPassword(password) {
		return usecase.ErrWeakPassword
	}
	return nil
}

// ログインの入力を検証
func (v *AuthValidator) ValidateLogin(email string, password string) error {
	if email == "" || password == "" {
		return usecase.ErrInvalidInput.WithMessage("email and password are required")
	}
	if !isValidEmailFormat(email) {
		return usecase.ErrInvalidEmail
	}
	return nil
}

// メールチェック。表示名つき（"A <a@b.c>"）は受け付けない
func isValidEmailFormat(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return false
	}
	return addr.Address == trimmed && strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".")
}

var weakPasswords = map[string]struct{}{
	"password":     {},
	"password123":  {},
	"123456789012": {},
	"1234567890":   {},
	"12345678":     {},
	"qwertyuiop":   {},
	"letmein123":   {},
	"admin123":     {},
	"iloveyou":     {},
	"11111111":     {},
}

func isWeakPassword(password string) bool {
	normalized := strings.ToLower(strings.TrimSpace(password))
	_, ok := weakPasswords[normalized]
	return ok
}
