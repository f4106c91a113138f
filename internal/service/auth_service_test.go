package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestSignAccessToken(t *testing.T) {
	userId := uuid.New()
	svc := &authService{jwtSecret: "test-secret"}

	signed, err := svc.signAccessToken(userId)
	if err != nil {
		t.Fatalf("signAccessToken error: %v", err)
	}

	token, err := jwt.Parse(signed, func(_ *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("claims type = %T", token.Claims)
	}
	if claims["user_id"] != userId.String() {
		t.Errorf("user_id claim = %v", claims["user_id"])
	}
}

func TestSignAccessTokenRequiresSecret(t *testing.T) {
	svc := &authService{}

	if _, err := svc.signAccessToken(uuid.New()); err == nil {
		t.Error("expected an error when no secret is configured")
	}
}
