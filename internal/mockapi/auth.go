package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL — срок жизни выдаваемого токена.
const TokenTTL = 8 * time.Hour

// hashCost — стоимость bcrypt; тесты понижают её.
var hashCost = bcrypt.DefaultCost

func hashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Tokens выпускает и проверяет HS256-токены заглушки.
type Tokens struct {
	secret    []byte
	nameClaim string
	now       func() time.Time
}

// NewTokens; nameClaim — ключ claim с именем (тот же, что читает клиент).
func NewTokens(secret, nameClaim string) *Tokens {
	return &Tokens{secret: []byte(secret), nameClaim: nameClaim, now: time.Now}
}

// Issue выпускает токен для менеджера.
func (t *Tokens) Issue(u UserRecord) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"role":  u.Kind.Resource(),
		"iat":   now.Unix(),
		"exp":   now.Add(TokenTTL).Unix(),
	}
	if t.nameClaim != "" {
		claims[t.nameClaim] = u.Name
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify проверяет подпись и срок действия.
func (t *Tokens) Verify(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

var errNoBearer = errors.New("missing bearer token")

func bearer(c *gin.Context) (string, error) {
	h := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", errNoBearer
	}
	return strings.TrimSpace(token), nil
}

// RequireBearer — middleware для маршрутов Chamado/*.
func (t *Tokens) RequireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearer(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		claims, err := t.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("claims", claims)
		c.Next()
	}
}
