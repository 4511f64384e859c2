package grid

import "fmt"

// Symbol is the content of a single grid cell.
type Symbol uint8

const (
	Empty              Symbol = iota // .
	MirrorForward                    // /
	MirrorBackward                   // \
	SplitterVertical                 // |
	SplitterHorizontal               // -
)

// NumSymbols is the number of distinct Symbol values.
const NumSymbols = 5

var symbolChars = [NumSymbols]byte{'.', '/', '\\', '|', '-'}

// SymbolFromByte maps an input character to its Symbol.
func SymbolFromByte(c byte) (Symbol, bool) {
	for i, sc := range symbolChars {
		if sc == c {
			return Symbol(i), true
		}
	}
	return 0, false
}

// Byte returns the input character for s.
func (s Symbol) Byte() byte {
	if s >= NumSymbols {
		return '?'
	}
	return symbolChars[s]
}

func (s Symbol) String() string {
	switch s {
	case Empty:
		return "empty"
	case MirrorForward:
		return "mirror(/)"
	case MirrorBackward:
		return `mirror(\)`
	case SplitterVertical:
		return "splitter(|)"
	case SplitterHorizontal:
		return "splitter(-)"
	}
	return fmt.Sprintf("symbol(%d)", uint8(s))
}
