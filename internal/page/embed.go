package page

import (
	"embed"
	"log"
)

//go:embed templates/index.html
var templateFS embed.FS

// getIndexTemplate は埋め込まれたindex.htmlの内容を返す
func getIndexTemplate() string {
	data, err := templateFS.ReadFile("templates/index.html")
	if err != nil {
		log.Fatalf("埋め込みindex.htmlの読み込みに失敗: %v", err)
	}
	return string(data)
}
