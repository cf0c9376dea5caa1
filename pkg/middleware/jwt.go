package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims はJWTトークンのクレーム（ペイロード）を表す。
// 認証済みユーザーの識別子をリクエスト間で伝播するために使用する。
type JWTClaims struct {
	jwt.RegisteredClaims
	// UserID は認証済みユーザーの一意識別子。
	UserID string `json:"user_id"`
}

// tokenIssuer はこのAPIが発行するトークンのissクレーム値。
const tokenIssuer = "gadget-api"

// tokenLifetime はトークンの有効期間。失効リストは持たず、期限切れのみが無効化手段。
const tokenLifetime = 24 * time.Hour

// GenerateJWT はユーザーIDからJWTトークンを生成する。
// 登録・ログイン成功時に呼び出される。有効期限は発行から24時間。
func GenerateJWT(secret, userID string) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    tokenIssuer,
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// VerifyJWT はJWTトークンを検証し、埋め込まれたユーザーIDを返す。
// 署名不正・ペイロード不正・期限切れのいずれもエラーになる。
func VerifyJWT(secret, tokenString string) (string, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("JWTトークンの検証に失敗: %w", err)
	}
	if !token.Valid {
		return "", errors.New("JWTトークンが無効")
	}
	return claims.UserID, nil
}

// UserExistsFunc はトークンに紐づくユーザーが現在も存在するかを確認する関数。
// ユーザーが見つからない場合は false を返す。ストア障害のみエラーを返す。
type UserExistsFunc func(ctx context.Context, userID string) (bool, error)

// JWTAuth はBearerトークンを検証するGinミドルウェアを返す。
// Authorizationヘッダーの抽出、トークン検証、ユーザー存在確認の3段階で
// 構成され、いずれかが失敗した時点でリクエストを打ち切る。
// 検証に成功した場合、コンテキストに "user_id" を設定する。
func JWTAuth(secret string, exists UserExistsFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "You are not logged in. Please log in to get access",
			})
			return
		}

		userID, err := VerifyJWT(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid token. Please log in again",
			})
			return
		}

		// トークンが有効でも、発行後にユーザーが消えている可能性がある
		ok, err := exists(c.Request.Context(), userID)
		if err != nil {
			log.Printf("ユーザー存在確認エラー: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Something went wrong",
			})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "The user belonging to this token no longer exists",
			})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// GetUserID はGinコンテキストから認証済みユーザーIDを取得する。
// JWTAuthミドルウェアが事前に適用されている必要がある。
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}
