package launcher

// Phase is the launcher's position in its input state machine.
type Phase int

const (
	// PhaseIdle accepts input for the current section.
	PhaseIdle Phase = iota
	// PhaseExiting has persisted state and asked the UI to quit. All further
	// input is dropped.
	PhaseExiting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Input identifies one key of the grid. Digits and upper-case letters map to
// themselves; InputEscape closes the launcher.
type Input rune

const InputEscape Input = 0x1b

// Digits lists the section keys in section order: '1' selects section 0 and
// '0' selects section 9.
const Digits = "1234567890"

// LetterRows are the application keys, one string per keyboard row.
var LetterRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

// SectionInput returns the key bound to section id.
func SectionInput(id int) Input {
	return Input(Digits[id])
}

// Normalize maps lower-case letters to the upper-case input ids used by the
// dispatch table.
func Normalize(r rune) Input {
	if r >= 'a' && r <= 'z' {
		r = r - 'a' + 'A'
	}
	return Input(r)
}
