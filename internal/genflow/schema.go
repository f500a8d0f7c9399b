// Package genflow runs one structured generation request: it renders a prompt
// from a typed value, hands it to a hosted model together with the response
// shape, and decodes the reply against that shape.
package genflow

// Kind is the declared kind of a field.
type Kind int

const (
	KindText Kind = iota + 1
	KindNumber
	KindBoolean
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Field describes one named member of a request or response shape.
// Elem is the element shape of a list; Fields are the members of an object.
// Description is forwarded to the model as a hint.
type Field struct {
	Name        string
	Kind        Kind
	Description string
	Optional    bool
	Elem        *Field
	Fields      []Field
}

// Descriptor is the top-level shape of one request or response. It is always an object.
type Descriptor struct {
	Name        string
	Description string
	Fields      []Field
}

// Field looks up a top-level field by name.
func (d *Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func Text(name, description string) Field {
	return Field{Name: name, Kind: KindText, Description: description}
}

func Number(name, description string) Field {
	return Field{Name: name, Kind: KindNumber, Description: description}
}

func Boolean(name, description string) Field {
	return Field{Name: name, Kind: KindBoolean, Description: description}
}

// List declares a sequence whose elements all have the shape of elem.
func List(name, description string, elem Field) Field {
	elem.Name = ""
	elem.Optional = false
	return Field{Name: name, Kind: KindList, Description: description, Elem: &elem}
}

func Object(name, description string, fields ...Field) Field {
	return Field{Name: name, Kind: KindObject, Description: description, Fields: fields}
}

// Optional marks f as allowed to be absent.
func Optional(f Field) Field {
	f.Optional = true
	return f
}
