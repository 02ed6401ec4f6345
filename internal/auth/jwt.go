package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sasamaylina/responsi-paw/internal/model"
)

var ErrInvalidToken = errors.New("无效的登录凭证")

// GenerateToken 为用户签发携带角色的JWT
func GenerateToken(secret string, ttl time.Duration, user *model.UserModel) (string, error) {
	if secret == "" {
		return "", errors.New("JWT密钥未配置")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.Id,
		"role":    string(user.Role),
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("签发token失败: %w", err)
	}
	return tokenString, nil
}

// ParseToken 解析并校验JWT，返回用户ID和角色
func ParseToken(secret, tokenString string) (int64, model.Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}

	userId, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return 0, "", ErrInvalidToken
	}

	role := model.Role(roleStr)
	if !role.Valid() {
		return 0, "", ErrInvalidToken
	}

	return int64(userId), role, nil
}
