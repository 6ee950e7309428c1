package page

import (
	"html"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// UnknownHostname はホスト名が取得できない場合に表示する値
const UnknownHostname = "unknown"

// osHostname はテストで差し替えられるようにしている
var osHostname = os.Hostname

// Version はページに表示するバージョン文字列 (ビルドに使ったGoのバージョン)
var Version = runtime.Version()

// Data はテンプレートに埋め込む値
type Data struct {
	Subtitle     string
	Version      string
	Path         string
	Hostname     string
	RequestCount uint64
}

// Renderer はテンプレートにDataを埋め込んでHTMLを生成する
type Renderer struct {
	template string
}

// NewRenderer は埋め込みテンプレートを使うRendererを作成する
func NewRenderer() *Renderer {
	return NewRendererWithTemplate(getIndexTemplate())
}

// NewRendererWithTemplate は任意のテンプレートを使うRendererを作成する
func NewRendererWithTemplate(tmpl string) *Renderer {
	return &Renderer{template: tmpl}
}

// Render はプレースホルダーを置換したHTMLを返す
func (r *Renderer) Render(data Data) []byte {
	replacer := strings.NewReplacer(
		"{{SUBTITLE}}", html.EscapeString(data.Subtitle),
		"{{VERSION}}", html.EscapeString(data.Version),
		"{{PATH}}", html.EscapeString(data.Path),
		"{{HOSTNAME}}", html.EscapeString(data.Hostname),
		"{{REQUEST_COUNT}}", strconv.FormatUint(data.RequestCount, 10),
	)
	return []byte(replacer.Replace(r.template))
}

// Hostname はホスト名を返す
// 取得に失敗した場合は UnknownHostname を返す
func Hostname() string {
	name, err := osHostname()
	if err != nil || name == "" {
		return UnknownHostname
	}
	return name
}
