package meeting

import "fmt"

type Type struct {
	value string
}

var (
	TypeOnline   = Type{value: "online"}
	TypeInPerson = Type{value: "in-person"}
	TypeHybrid   = Type{value: "hybrid"}
)

func (t Type) String() string {
	if t.value == "" {
		return TypeOnline.value
	}
	return t.value
}

func ParseType(raw string) (Type, error) {
	switch raw {
	case "", TypeOnline.value:
		return TypeOnline, nil
	case TypeInPerson.value:
		return TypeInPerson, nil
	case TypeHybrid.value:
		return TypeHybrid, nil
	}
	return Type{}, fmt.Errorf("invalid meeting type: %s", raw)
}
