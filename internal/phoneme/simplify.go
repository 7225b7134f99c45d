package phoneme

import "strings"

// simplifyTable maps ARPAbet phonemes (stress stripped) to the reduced
// kid-friendly symbol set used throughout the exercises. Several machine
// phonemes collapse onto one symbol (AA/AE -> "a", IY -> "ee").
var simplifyTable = map[string]string{
	"AA": "a",
	"AE": "a",
	"AH": "u",
	"AO": "aw",
	"AW": "ow",
	"AY": "i",
	"B":  "b",
	"CH": "ch",
	"D":  "d",
	"DH": "th",
	"EH": "e",
	"ER": "er",
	"EY": "a",
	"F":  "f",
	"G":  "g",
	"HH": "h",
	"IH": "i",
	"IY": "ee",
	"JH": "j",
	"K":  "k",
	"L":  "l",
	"M":  "m",
	"N":  "n",
	"NG": "ng",
	"OW": "o",
	"OY": "oy",
	"P":  "p",
	"R":  "r",
	"S":  "s",
	"SH": "sh",
	"T":  "t",
	"TH": "th",
	"UH": "u",
	"UW": "oo",
	"V":  "v",
	"W":  "w",
	"Y":  "y",
	"Z":  "z",
	"ZH": "zh",
}

// voicedTargets is the set of simplified symbols that must carry vocal
// cord vibration. A loud but unvoiced attempt at one of these is air,
// not speech; the anti-blow rule only applies to this set.
var voicedTargets = map[string]bool{
	"a": true, "e": true, "i": true, "o": true, "u": true,
	"oo": true, "ee": true, "er": true,
	"m": true, "n": true, "ng": true,
	"l": true, "r": true, "w": true, "y": true,
	"v": true, "z": true, "j": true,
}

// Simplify converts a raw ARPAbet phoneme (possibly carrying a stress
// digit, e.g. "AH0") to its kid-friendly symbol. Unmapped phonemes pass
// through lower-cased.
func Simplify(raw string) string {
	stripped := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, raw)
	stripped = strings.ToUpper(strings.TrimSpace(stripped))

	if simple, ok := simplifyTable[stripped]; ok {
		return simple
	}
	return strings.ToLower(stripped)
}

// IsVoicedTarget reports whether the simplified target phoneme requires
// voicing (vowels, nasals, liquids, glides, voiced fricatives and the
// voiced affricate).
func IsVoicedTarget(target string) bool {
	return voicedTargets[strings.ToLower(strings.TrimSpace(target))]
}
