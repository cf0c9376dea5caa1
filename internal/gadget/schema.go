package gadget

import (
	"database/sql"
	"fmt"
)

// スキーマ定義。db/gadget/schema.sql と同期すること。
const schema = `
CREATE TABLE IF NOT EXISTS users (
    -- ユーザーの一意識別子
    id TEXT PRIMARY KEY,
    -- ログイン名。全ユーザー間で一意
    username TEXT NOT NULL UNIQUE,
    -- bcryptでハッシュ化されたパスワード
    password_hash TEXT NOT NULL,
    -- 作成日時
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS gadgets (
    -- ガジェットの一意識別子
    id TEXT PRIMARY KEY,
    -- 自動生成されるコードネーム
    name TEXT NOT NULL,
    -- ステータス（Available / Deployed / Destroyed / Decommissioned）
    status TEXT NOT NULL DEFAULT 'Available',
    -- 退役日時。退役していない場合はNULL
    decommissioned_at DATETIME,
    -- 自爆日時。自爆していない場合はNULL
    self_destruct_at DATETIME,
    -- 作成日時
    created_at DATETIME NOT NULL DEFAULT (datetime('now')),
    -- 更新日時
    updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

-- ステータスでの絞り込みを高速化するインデックス。
CREATE INDEX IF NOT EXISTS idx_gadgets_status
    ON gadgets(status);
`

// initSchema はSQLiteデータベースにスキーマを適用する。
func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("スキーマの適用に失敗: %w", err)
	}
	return nil
}
