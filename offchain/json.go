package offchain

import (
	"errors"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

// Attribute is one entry of the "attributes" array.
type Attribute struct {
	TraitType string
	Value     any
}

// MetadataJSON is an off-chain metadata document. Raw holds the whole
// document with every object key converted to camelCase.
type MetadataJSON struct {
	Name                 string
	Symbol               string
	Description          string
	Image                string
	AnimationURL         string
	ExternalURL          string
	SellerFeeBasisPoints uint16
	Attributes           []Attribute
	Raw                  map[string]any
}

// Parse validates body and normalizes it. The document must be a JSON
// object.
func Parse(body []byte) (*MetadataJSON, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid json")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errors.New("metadata json is not an object")
	}

	raw, _ := normalize(root).(map[string]any)
	doc := &MetadataJSON{
		Name:                 field(root, "name").String(),
		Symbol:               field(root, "symbol").String(),
		Description:          field(root, "description").String(),
		Image:                field(root, "image").String(),
		AnimationURL:         field(root, "animation_url").String(),
		ExternalURL:          field(root, "external_url").String(),
		SellerFeeBasisPoints: uint16(field(root, "seller_fee_basis_points").Uint()),
		Raw:                  raw,
	}
	field(root, "attributes").ForEach(func(_, v gjson.Result) bool {
		doc.Attributes = append(doc.Attributes, Attribute{
			TraitType: field(v, "trait_type").String(),
			Value:     field(v, "value").Value(),
		})
		return true
	})
	return doc, nil
}

// field reads key in its snake_case or camelCase spelling.
func field(r gjson.Result, key string) gjson.Result {
	if v := r.Get(gjson.Escape(key)); v.Exists() {
		return v
	}
	return r.Get(gjson.Escape(CamelCase(key)))
}

func normalize(r gjson.Result) any {
	switch {
	case r.IsObject():
		out := make(map[string]any)
		r.ForEach(func(k, v gjson.Result) bool {
			out[CamelCase(k.String())] = normalize(v)
			return true
		})
		return out
	case r.IsArray():
		out := make([]any, 0)
		r.ForEach(func(_, v gjson.Result) bool {
			out = append(out, normalize(v))
			return true
		})
		return out
	default:
		return r.Value()
	}
}

// CamelCase converts snake_case and kebab-case keys. Keys without
// separators are returned unchanged.
func CamelCase(key string) string {
	if !strings.ContainsAny(key, "_-") {
		return key
	}
	var b strings.Builder
	b.Grow(len(key))
	upper := false
	for _, r := range key {
		if r == '_' || r == '-' {
			upper = b.Len() > 0
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
