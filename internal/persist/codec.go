package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todo/internal/model"
)

// document is the persisted layout. The visibility filter is not stored;
// it resets every session.
type document struct {
	Todos []*model.Item `json:"todos"`
}

const schemaURL = "https://github.com/idilsaglam/todo/state.schema.json"

const stateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "todos": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "text"],
        "properties": {
          "id":        {"type": "string", "minLength": 1},
          "text":      {"type": "string"},
          "completed": {"type": "boolean"}
        }
      }
    }
  }
}`

var schema = jsonschema.MustCompileString(schemaURL, stateSchema)

// ErrDuplicateID reports stored data that breaks id uniqueness.
var ErrDuplicateID = errors.New("duplicate todo id")

// Encode serializes the todos of s.
func Encode(s *model.State) ([]byte, error) {
	doc := document{Todos: []*model.Item{}}
	if s != nil && s.Todos != nil {
		doc.Todos = s.Todos
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses a stored document into a fresh state with the default
// filter. Anything that is not valid JSON of the expected shape is rejected.
func Decode(raw []byte) (*model.State, error) {
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	st := model.DefaultState()
	seen := make(map[string]struct{}, len(doc.Todos))
	for _, it := range doc.Todos {
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w %q", ErrDuplicateID, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	if doc.Todos != nil {
		st.Todos = doc.Todos
	}
	return st, nil
}
