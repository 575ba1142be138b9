package model

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/*.json
var schemaFS embed.FS

// Schema names one of the embedded JSON schemas for persisted values.
type Schema string

const (
	SchemaPersonalInfo  Schema = "schema/personal_info.schema.json"
	SchemaCustomization Schema = "schema/customization.schema.json"
	SchemaAchievements  Schema = "schema/achievements.schema.json"
)

var (
	schemaMu    sync.Mutex
	schemaCache = map[Schema]*gojsonschema.Schema{}
)

func compiled(s Schema) (*gojsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	if sch, ok := schemaCache[s]; ok {
		return sch, nil
	}
	b, err := schemaFS.ReadFile(string(s))
	if err != nil {
		return nil, err
	}
	sch, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", s, err)
	}
	schemaCache[s] = sch
	return sch, nil
}

func check(s Schema, doc gojsonschema.JSONLoader) error {
	sch, err := compiled(s)
	if err != nil {
		return err
	}
	res, err := sch.Validate(doc)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// ValidateJSON validates a raw JSON document against the named schema.
func ValidateJSON(s Schema, raw []byte) error {
	return check(s, gojsonschema.NewBytesLoader(raw))
}

// ValidateValue validates an already decoded value (maps, slices, scalars).
func ValidateValue(s Schema, v interface{}) error {
	return check(s, gojsonschema.NewGoLoader(v))
}

func DecodePersonalInfo(raw []byte) (PersonalInfo, error) {
	var info PersonalInfo
	if err := ValidateJSON(SchemaPersonalInfo, raw); err != nil {
		return info, err
	}
	if err := json.Unmarshal(raw, &info); err != nil {
		return PersonalInfo{}, err
	}
	return info, nil
}

func DecodeCustomization(raw []byte) (ResumeCustomization, error) {
	var c ResumeCustomization
	if err := ValidateJSON(SchemaCustomization, raw); err != nil {
		return c, err
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return ResumeCustomization{}, err
	}
	return c, nil
}

func DecodeAchievements(raw []byte) ([]StoredAchievement, error) {
	if err := ValidateJSON(SchemaAchievements, raw); err != nil {
		return nil, err
	}
	var items []StoredAchievement
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
