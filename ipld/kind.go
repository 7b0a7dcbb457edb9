package ipld

import "fmt"

// Kind identifies which data model kind a Node holds.
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	BytesKind
	StringKind
	ListKind
	MapKind
	LinkKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		NullKind:   "Null",
		BoolKind:   "Bool",
		IntKind:    "Int",
		FloatKind:  "Float",
		BytesKind:  "Bytes",
		StringKind: "String",
		ListKind:   "List",
		MapKind:    "Map",
		LinkKind:   "Link",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Null":   NullKind,
		"Bool":   BoolKind,
		"Int":    IntKind,
		"Float":  FloatKind,
		"Bytes":  BytesKind,
		"String": StringKind,
		"List":   ListKind,
		"Map":    MapKind,
		"Link":   LinkKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		NullKind,
		BoolKind,
		IntKind,
		FloatKind,
		BytesKind,
		StringKind,
		ListKind,
		MapKind,
		LinkKind,
	}
}
