package extract

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/masaki-ito/weldreg/internal/common"
)

// labelConfigSchema constrains label override files: only the documented
// keys are legal, so a typoed option fails loudly instead of silently
// dropping a synonym set.
const labelConfigSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["categories"],
  "properties": {
    "categories": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["category", "synonyms"],
        "properties": {
          "category": {
            "type": "string",
            "enum": ["CERT_NO", "REG_NO", "APPROVAL_NO", "QUAL_NO", "GENERIC_NO"]
          },
          "synonyms": {
            "type": "array",
            "minItems": 1,
            "items": {"type": "string", "minLength": 1}
          }
        }
      }
    }
  }
}`

type labelConfigFile struct {
	Categories []CategoryDef `json:"categories"`
}

var compiledLabelSchema = jsonschema.MustCompileString("labelconfig.json", labelConfigSchema)

// LoadLabelTable reads a JSON label-config override and returns the
// validated table. The file replaces the default table wholesale; the
// category order in the file is the priority order.
func LoadLabelTable(path string) (*LabelTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapError(err, "read label config")
	}
	return ParseLabelTable(raw)
}

// ParseLabelTable validates raw JSON label config against the schema and
// builds a LabelTable from it.
func ParseLabelTable(raw []byte) (*LabelTable, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, common.ConfigErrorf("label config is not valid JSON: %v", err)
	}
	if err := compiledLabelSchema.Validate(doc); err != nil {
		return nil, common.NewAppError("CONFIG_ERROR", "label config rejected by schema", err)
	}
	var cfg labelConfigFile
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, common.ConfigErrorf("label config decode: %v", err)
	}
	return NewLabelTable(cfg.Categories)
}
