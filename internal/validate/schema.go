package validate

// FieldType is the JSON type a field must have.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
)

// Field describes one property of an object schema.
type Field struct {
	Name string
	Type FieldType

	Required bool
	// Forbidden fields must not appear in the document at all.
	Forbidden bool

	MinLength int
	Format    string // JSON-Schema format, e.g. "uri"
	Minimum   *int
	Maximum   *int
}

// Schema is an object schema declared as plain data.
type Schema struct {
	ID              string
	Title           string
	Fields          []Field
	AllowAdditional bool
}

// Document renders s as a draft-07 JSON-Schema document.
func (s Schema) Document() map[string]any {
	props := make(map[string]any, len(s.Fields))
	required := []string{}
	forbidden := []any{}
	for _, f := range s.Fields {
		if f.Forbidden {
			forbidden = append(forbidden, map[string]any{"required": []string{f.Name}})
			continue
		}
		props[f.Name] = f.document()
		if f.Required {
			required = append(required, f.Name)
		}
	}

	doc := map[string]any{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"$id":                  s.ID,
		"type":                 "object",
		"properties":           props,
		"additionalProperties": s.AllowAdditional,
	}
	if s.Title != "" {
		doc["title"] = s.Title
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	// Without additional properties a forbidden field is already rejected as
	// unknown; otherwise it needs an explicit rule.
	if len(forbidden) > 0 && s.AllowAdditional {
		doc["not"] = map[string]any{"anyOf": forbidden}
	}
	return doc
}

func (f Field) document() map[string]any {
	d := map[string]any{"type": string(f.Type)}
	if f.MinLength > 0 {
		d["minLength"] = f.MinLength
	}
	if f.Format != "" {
		d["format"] = f.Format
	}
	if f.Minimum != nil {
		d["minimum"] = *f.Minimum
	}
	if f.Maximum != nil {
		d["maximum"] = *f.Maximum
	}
	return d
}
