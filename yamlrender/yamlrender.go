package yamlrender

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/jonp92/TemplateTango/templating"
)

type scalarRenderer struct {
	en   *templating.Engine
	vars map[string]string
}

// RenderDocuments reads multi-document YAML from in,
// renders every string scalar with en against vars, and
// writes the documents to out separated by "---". Empty
// and comment-only documents are dropped.
func RenderDocuments(
	in io.Reader,
	out io.Writer,
	en *templating.Engine,
	vars map[string]string,
) error {
	const errCtx = "rendering yaml documents"

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf(
			"%s: reading input: %w",
			errCtx, err,
		)
	}

	docs, err := decodeAllDocs(raw, yaml.UseOrderedMap())
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	sr := scalarRenderer{en: en, vars: vars}

	for idx, doc := range docs {
		doc, err = sr.render(doc)
		if err != nil {
			return fmt.Errorf(
				"%s: document %d: %w",
				errCtx, idx, err,
			)
		}

		buf, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf(
				"%s: marshaling document: %w",
				errCtx, err,
			)
		}

		if idx > 0 {
			if _, err := out.Write(
				[]byte("---\n"),
			); err != nil {
				return fmt.Errorf(
					"%s: writing separator: %w",
					errCtx, err,
				)
			}
		}

		if _, err := out.Write(buf); err != nil {
			return fmt.Errorf(
				"%s: writing output: %w",
				errCtx, err,
			)
		}
	}

	return nil
}

// decodeAllDocs decodes every document of a YAML stream,
// skipping documents without a body, comment-only
// documents and null documents. The whole stream is parsed
// up front so an empty document in the middle does not end
// it.
func decodeAllDocs(
	raw []byte,
	opts ...yaml.DecodeOption,
) ([]interface{}, error) {
	const errCtx = "decoding yaml"

	file, err := parser.ParseBytes(raw, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var docs []interface{}

	for idx, dn := range file.Docs {
		if dn == nil || dn.Body == nil ||
			dn.Body.Type() == ast.CommentType {
			continue
		}

		var doc interface{}

		if err := yaml.NodeToValue(dn.Body, &doc, opts...); err != nil {
			return nil, fmt.Errorf(
				"%s: document %d: %w",
				errCtx, idx, err,
			)
		}

		if doc == nil {
			continue
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// render returns node with its string scalars rendered.
// Containers are updated in place.
func (sr *scalarRenderer) render(
	node interface{},
) (interface{}, error) {
	switch typedVal := node.(type) {
	case string:
		rendered, err := sr.en.Render(typedVal, sr.vars)
		if err != nil {
			return nil, err
		}

		return rendered, nil
	case yaml.MapSlice:
		for idx := range typedVal {
			val, err := sr.render(typedVal[idx].Value)
			if err != nil {
				return nil, fmt.Errorf(
					"key %v: %w", typedVal[idx].Key, err,
				)
			}

			typedVal[idx].Value = val
		}
	case map[string]interface{}:
		for key := range typedVal {
			val, err := sr.render(typedVal[key])
			if err != nil {
				return nil, fmt.Errorf("key %s: %w", key, err)
			}

			typedVal[key] = val
		}
	case []interface{}:
		for idx := range typedVal {
			val, err := sr.render(typedVal[idx])
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", idx, err)
			}

			typedVal[idx] = val
		}
	}

	return node, nil
}
