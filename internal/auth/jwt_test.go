package auth

import (
	"testing"

	"minimarket-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateTokenIdaYVuelta(t *testing.T) {
	const secret = "clave-de-prueba-suficientemente-larga-123"

	user := &models.User{ID: 7, Username: "cajero", Role: models.RoleVendedor}
	tokenStr, err := GenerateToken(secret, user)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("el token debería ser válido: %v", err)
	}

	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok {
		t.Fatal("no se pudieron leer las claims")
	}
	if claims.UserID != 7 || claims.Username != "cajero" || claims.Role != models.RoleVendedor {
		t.Errorf("claims inesperadas: %+v", claims)
	}
}

func TestGenerateTokenOtraClaveNoValida(t *testing.T) {
	user := &models.User{ID: 7, Username: "cajero", Role: models.RoleVendedor}
	tokenStr, err := GenerateToken("clave-de-prueba-suficientemente-larga-123", user)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("otra-clave-igual-de-larga-pero-distinta!"), nil
	})
	if err == nil && token.Valid {
		t.Fatal("el token no debería validar con otra clave")
	}
}
