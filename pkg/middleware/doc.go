// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// JWT認証トークンの発行・検証、パニックリカバリ、CORS設定など、
// ルーティングの前段で適用する処理を含む。
package middleware
