package piece

import "fmt"

// Kind identifies a piece shape.
type Kind uint8

const (
	I Kind = iota
	J
	L
	O
	S
	T
	Z
	Bomb
)

var kindNames = [...]string{
	I:    "I",
	J:    "J",
	L:    "L",
	O:    "O",
	S:    "S",
	T:    "T",
	Z:    "Z",
	Bomb: "Bomb",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("piece: unknown kind %q", s)
}

// Regular returns the seven tetromino kinds in catalog order.
func Regular() []Kind {
	return []Kind{I, J, L, O, S, T, Z}
}

// Kinds returns every kind, the bomb last.
func Kinds() []Kind {
	return append(Regular(), Bomb)
}

func (k Kind) IsBomb() bool {
	return k == Bomb
}
