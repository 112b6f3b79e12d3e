package utils

import (
	"fmt"

	"github.com/golang-jwt/jwt"
	"github.com/ougirez/turnero/internal/pkg/constants"
	"github.com/spf13/viper"
)

type AuthToken struct {
	UserID int64  `json:"user_id"`
	Secret string `json:"secret"`
	jwt.StandardClaims
}

func ParseAuthToken(raw string) (*AuthToken, error) {
	token := &AuthToken{}
	_, err := jwt.ParseWithClaims(raw, token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(viper.GetString(constants.ViperSecretKey)), nil
	})
	if err != nil {
		return nil, constants.ErrUnauthorized
	}

	return token, nil
}
