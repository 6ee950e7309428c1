// Package page は、ワークショップ用のHTMLページを生成します。
//
// テンプレートはバイナリに埋め込まれており、プレースホルダーを
// 文字列置換するだけの単純な仕組みです。
//
// プレースホルダー:
//   - {{SUBTITLE}}      サブタイトル (環境変数 SUBTITLE)
//   - {{VERSION}}       ビルドに使ったGoのバージョン
//   - {{PATH}}          リクエストパス
//   - {{HOSTNAME}}      ホスト名 (Pod名)
//   - {{REQUEST_COUNT}} 起動してからのリクエスト数
//
// 置換する値はHTMLエスケープしてから埋め込みます。
package page
