// Package server は、ワークショップ用のHTTPサーバーを管理します。
//
// このパッケージは、HTTPサーバーの起動、ルーティング、
// ページの生成、グレースフルシャットダウンを担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - すべてのパスに対するワークショップページの配信
//   - ヘルスチェック、ステータス、メトリクスの配信
//   - リクエスト数のカウント
//
// 仕様:
//   - ginを使用し、個別ルート以外はNoRouteでページを返す
//   - リクエスト数はプロセス内のアトミックなカウンターで数える
//   - SIGINT/SIGTERMでグレースフルシャットダウンに対応
//   - 複数クライアントの同時接続をサポート
package server
