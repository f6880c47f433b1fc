package source

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/flow"
)

// Column aliases accepted in CSV headers, keyed by lower-cased header.
var columns = map[string]string{
	"ref":         "ref",
	"id":          "ref",
	"reference":   "ref",
	"key":         "ref",
	"label":       "label",
	"name":        "label",
	"title":       "label",
	"step":        "label",
	"phase":       "phase",
	"stage":       "phase",
	"owner":       "owner",
	"role":        "owner",
	"responsible": "owner",
	"description": "description",
	"desc":        "description",
	"notes":       "description",
	"shape":       "shape",
	"type":        "shape",
	"kind":        "shape",
}

// ReadCSV decodes rows from CSV with a header line. Unknown columns are
// ignored; ref and label columns are required.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "read csv header")
	}
	pos := make(map[string]int)
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if col, ok := columns[name]; ok {
			if _, dup := pos[col]; !dup {
				pos[col] = i
			}
		}
	}
	for _, col := range []string{"ref", "label"} {
		if _, ok := pos[col]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidSource, "csv header has no %s column", col)
		}
	}

	field := func(rec []string, col string) string {
		i, ok := pos[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "read csv row %d", len(rows)+1)
		}
		if blank(rec) {
			continue
		}
		rows = append(rows, Row{
			Ref:         field(rec, "ref"),
			Label:       field(rec, "label"),
			Phase:       field(rec, "phase"),
			Owner:       field(rec, "owner"),
			Description: field(rec, "description"),
			Shape:       flow.ShapeKind(field(rec, "shape")),
		})
	}
	if err := Validate(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ReadJSON decodes rows from a JSON list or a {"rows": [...]} object.
func ReadJSON(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "read json")
	}
	var rows []Row
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc struct {
			Rows []Row `json:"rows"`
		}
		err = json.Unmarshal(trimmed, &doc)
		rows = doc.Rows
	} else {
		err = json.Unmarshal(trimmed, &rows)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "decode json rows")
	}
	if err := Validate(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ReadYAML decodes rows from a YAML sequence or a mapping with a rows key.
func ReadYAML(r io.Reader) ([]Row, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "decode yaml")
	}

	var rows []Row
	var err error
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	switch root.Kind {
	case yaml.MappingNode:
		var doc struct {
			Rows []Row `yaml:"rows"`
		}
		err = root.Decode(&doc)
		rows = doc.Rows
	case yaml.SequenceNode:
		err = root.Decode(&rows)
	default:
		return nil, errors.New(errors.ErrCodeInvalidSource, "yaml must be a list of rows or a mapping with rows")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "decode yaml rows")
	}
	if err := Validate(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ReadFile reads rows from path, choosing the format by extension
// (.csv, .json, .yaml or .yml).
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f)
	case ".json":
		return ReadJSON(f)
	case ".yaml", ".yml":
		return ReadYAML(f)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported source format: %s", filepath.Ext(path))
	}
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
