package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPasskey 使用bcrypt算法对口令进行哈希处理
func HashPasskey(passkey string) (string, error) {
	if passkey == "" {
		return "", errors.New("passkey cannot be empty")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(passkey), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passkey: %w", err)
	}

	return string(hashedBytes), nil
}

// CheckPasskeyHash 检查口令是否与哈希值匹配
func CheckPasskeyHash(passkey, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passkey))

	if err != nil && errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return errors.New("invalid credentials")
	}

	return err
}
