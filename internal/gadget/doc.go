// Package gadget はガジェット在庫APIのHTTPサーバーを提供する。
//
// ユーザー登録・ログインによるJWT発行と、ガジェットのCRUD操作
// （一覧・作成・更新・退役・自爆）を扱う。ガジェットは物理削除されず、
// ステータス遷移による論理削除のみが行われる。
package gadget
