package codec

import "gopkg.in/yaml.v3"

// YAML encodes bodies with gopkg.in/yaml.v3.
type YAML struct{}

func (YAML) Serialize(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (YAML) Deserialize(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
