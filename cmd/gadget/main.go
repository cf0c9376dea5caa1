// ガジェット在庫APIのエントリポイント。
// ユーザー登録・ログインによるJWT発行と、ガジェットの一覧・作成・更新・
// 退役・自爆の各操作を提供する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/gadget-api/internal/gadget"
)

func main() {
	// 署名シークレットが未設定のまま起動すると全トークンが無価値になるため、
	// フォールバックせず即座に停止する。
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRETが設定されていません。署名シークレットなしでは起動できません")
	}

	cfg := gadget.Config{
		Port:        getEnvOr("PORT", "8080"),
		DBPath:      getEnvOr("GADGET_DB", "/data/gadget.db?_journal_mode=WAL&_busy_timeout=5000"),
		JWTSecret:   jwtSecret,
		FrontendURL: getEnvOr("FRONTEND_URL", "http://localhost:3000"),
	}

	server, err := gadget.NewServer(cfg)
	if err != nil {
		log.Fatalf("ガジェットサーバーの初期化に失敗: %v", err)
	}

	log.Printf("ガジェットサービスを起動します: :%s", cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("ガジェットサービスの起動に失敗: %v", err)
	}
}

// getEnvOr は環境変数の値を返し、未設定ならデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
