package board

// PieceType is a piece identity with no color, in rank order: a piece may
// capture any opposing piece of equal or lower rank (subject to the
// General/Soldier exception and the Cannon's universal capture, see
// CanCapture).
type PieceType uint8

const (
	Soldier PieceType = iota
	Cannon
	Horse
	Chariot
	Elephant
	Advisor
	General

	NumPieceTypes = 7
)

// Piece identifies one of the 14 colored piece identities, plus the two
// sentinels EMPTY and COVERED. Ordered RED identities 0..6, BLACK identities
// 7..13, matching PieceType order within each color.
type Piece uint8

const (
	RedSoldier Piece = iota
	RedCannon
	RedHorse
	RedChariot
	RedElephant
	RedAdvisor
	RedGeneral

	BlackSoldier
	BlackCannon
	BlackHorse
	BlackChariot
	BlackElephant
	BlackAdvisor
	BlackGeneral

	Empty
	Covered

	NumIdentities = 14
	NumPieces     = 16 // identities + EMPTY + COVERED
)

// IsIdentity reports whether p is one of the 14 real piece identities (not
// EMPTY or COVERED).
func (p Piece) IsIdentity() bool {
	return p < NumIdentities
}

// Type returns the piece's rank. Only valid for a real identity.
func (p Piece) Type() PieceType {
	return PieceType(uint8(p) % NumPieceTypes)
}

// Color returns the piece's color. Only valid for a real identity.
func (p Piece) Color() Color {
	if p < RedSoldier+NumPieceTypes {
		return Red
	}
	return Black
}

// GeneralOf returns the GENERAL identity for the given color.
func GeneralOf(c Color) Piece {
	if c == Red {
		return RedGeneral
	}
	return BlackGeneral
}

var pieceChars = [NumPieces]byte{
	RedSoldier:   'P',
	RedCannon:    'C',
	RedHorse:     'N',
	RedChariot:   'R',
	RedElephant:  'M',
	RedAdvisor:   'G',
	RedGeneral:   'K',
	BlackSoldier: 'p',
	BlackCannon:  'c',
	BlackHorse:   'n',
	BlackChariot: 'r',
	BlackElephant: 'm',
	BlackAdvisor: 'g',
	BlackGeneral: 'k',
	Empty:        '-',
	Covered:      'X',
}

// ParsePieceChar parses the character encoding shared by FromLayout and the
// protocol's flip command: uppercase P C N R M G K for RED, lowercase for
// BLACK, X for COVERED, - for EMPTY.
func ParsePieceChar(r byte) (Piece, bool) {
	for p, c := range pieceChars {
		if c == r {
			return Piece(p), true
		}
	}
	return 0, false
}

func (p Piece) String() string {
	if int(p) < len(pieceChars) {
		return string(pieceChars[p])
	}
	return "?"
}

// CanCapture reports whether a piece identified by a may legally capture the
// square occupant b.
func CanCapture(a, b Piece) bool {
	if b == Covered {
		return false
	}
	if b == Empty {
		return true
	}
	if a.Color() == b.Color() {
		return false
	}

	at, bt := a.Type(), b.Type()
	switch {
	case at == General && bt == Soldier:
		return false
	case at == Soldier && bt == General:
		return true
	case at == Cannon:
		return true
	default:
		return at >= bt
	}
}
