// Package schema 生成配置文件的 JSON Schema，供编辑器补全与校验使用
package schema

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/yeisme/gosloc/pkg/configs"
	"github.com/yeisme/gosloc/pkg/sloc"
)

func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "mapstructure",
	}
}

func write(out io.Writer, s *jsonschema.Schema) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

// GenConfigSchema 生成完整配置文件的 Schema
func GenConfigSchema(out io.Writer) error {
	s := newReflector().Reflect(configs.Config{})
	s.Title = "gosloc configuration"
	return write(out, s)
}

// GenRulesSchema 生成自定义语言规则列表的 Schema
func GenRulesSchema(out io.Writer) error {
	s := newReflector().Reflect([]sloc.Rule{})
	s.Title = "gosloc language rules"
	return write(out, s)
}
