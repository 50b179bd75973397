// Package main 生成 docs/ 下的配置 Schema 文件
package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/yeisme/gosloc/pkg/utils/schema"
)

//go:generate go run github.com/yeisme/gosloc/cmd/schema
func main() {
	docs := filepath.Join("..", "..", "docs")
	if err := os.MkdirAll(docs, 0o755); err != nil {
		panic(err)
	}
	writeSchema(filepath.Join(docs, "config_schema.json"), schema.GenConfigSchema)
	writeSchema(filepath.Join(docs, "rules_schema.json"), schema.GenRulesSchema)
}

func writeSchema(path string, gen func(io.Writer) error) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer func() { _ = f.Close() }()
	if err := gen(f); err != nil {
		panic(err)
	}
}
