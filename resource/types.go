package resource

type Kind uint8

const (
	KindImage Kind = iota
	KindVideo
	KindAudio
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "Kind(Image)"
	case KindVideo:
		return "Kind(Video)"
	case KindAudio:
		return "Kind(Audio)"
	case KindText:
		return "Kind(Text)"
	}
	return "Kind(UNKNOWN)"
}

// Label is the short lower-case name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Kinds lists every kind in catalog order.
var Kinds = [...]Kind{KindImage, KindVideo, KindAudio, KindText}
