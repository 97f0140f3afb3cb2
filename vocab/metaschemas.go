package vocab

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/parse"
	"github.com/signadot/jsonschema/schema"
)

//go:embed metaschemas
var metaFS embed.FS

// MetaSchemas parses the embedded meta-schema documents. Each parse returns
// fresh nodes.
func MetaSchemas() ([]*ir.Node, error) {
	var docs []*ir.Node
	err := fs.WalkDir(metaFS, "metaschemas", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".json" {
			return nil
		}
		data, err := metaFS.ReadFile(p)
		if err != nil {
			return err
		}
		doc, err := parse.Parse(data, parse.ParseJSON(), parse.ParseFilename(p))
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// RegisterMetaSchemas adds every embedded meta-schema to reg under its $id.
func RegisterMetaSchemas(reg *schema.Registry) error {
	docs, err := MetaSchemas()
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if _, err := reg.Add(doc); err != nil {
			id, _ := ir.GetString(doc, "$id")
			return fmt.Errorf("meta-schema %s: %w", id, err)
		}
	}
	return nil
}
