package prefabs

import (
	"strings"

	"github.com/milk9111/ssu/ssu"
	"gopkg.in/yaml.v3"
)

// BlockEntry is the YAML form of one property block override.
type BlockEntry struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Value any    `yaml:"value"`
}

// MarshalBlock renders a property block as a YAML list in write order.
func MarshalBlock(b *ssu.PropertyBlock) ([]byte, error) {
	entries := []BlockEntry{}
	if b != nil {
		b.Range(func(name string, v ssu.Value) bool {
			entries = append(entries, BlockEntry{Name: name, Kind: strings.ToLower(v.Kind.String()), Value: plain(v)})
			return true
		})
	}
	return yaml.Marshal(entries)
}

func plain(v ssu.Value) any {
	switch v.Kind {
	case ssu.KindFloat:
		return v.Float
	case ssu.KindInt:
		return v.Int
	case ssu.KindColor:
		return v.Color.Slice()
	case ssu.KindVector:
		return v.Vector.Slice()
	case ssu.KindTexture:
		return string(v.Texture)
	}
	return nil
}
