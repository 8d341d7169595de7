package document

// Kind classifies how a document's template text is compiled.
type Kind int

const (
	// KindTemplateOnly marks a bare template body with no surrounding
	// host document.
	KindTemplateOnly Kind = iota
	// KindFull marks a complete document.
	KindFull
)

func (k Kind) String() string {
	switch k {
	case KindTemplateOnly:
		return "TemplateOnly"
	case KindFull:
		return "Full"
	default:
		return "Unknown"
	}
}
