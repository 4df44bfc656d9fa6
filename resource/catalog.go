package resource

import (
	"sort"
	"strings"
)

// catalog holds every file name shipped with the game, upper-cased. Names
// are matched exactly: several extensions are shared between unrelated
// formats, so nothing is inferred from them.
var catalog = map[string]Kind{
	"DGLOGO.SCR":   KindImage,
	"EAPMLOGO.SCR": KindImage,
	"LSLOGO.SCR":   KindImage,
	"TITLE.SCR":    KindImage,
	"WNDWS.SCR":    KindImage,
	"ITEMS.SCR":    KindImage,
	"SPELLS.SCR":   KindImage,
	"MOUSE.SCR":    KindImage,
	"CHARGEN.SCR":  KindImage,
	"ENDGAME.SCR":  KindImage,
	"DEATH.SCR":    KindImage,
	"PAPER.SCR":    KindImage,

	"INTRO.FLC":  KindVideo,
	"ENDING.FLC": KindVideo,
	"DEATH.FLC":  KindVideo,

	"MUSIC.XMI": KindAudio,
	"SOUND.XMI": KindAudio,
	"VOICE.WAV": KindAudio,

	"STRINGS.TXT": KindText,
	"DIALOG.TXT":  KindText,
	"ITEMS.TXT":   KindText,
}

// Classify reports the kind of a known resource file name. The lookup is
// case-insensitive; names outside the catalog report false.
func Classify(name string) (Kind, bool) {
	kind, ok := catalog[strings.ToUpper(name)]
	return kind, ok
}

// CatalogNames returns the known file names of a kind, sorted.
func CatalogNames(kind Kind) []string {
	var names []string
	for name, k := range catalog {
		if k == kind {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
