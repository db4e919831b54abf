package layout

// Seed tables: the hand-authored direct substitution maps from the qwerty
// hub to each peripheral layout. Each entry reads "the physical key that
// produces K under qwerty produces V under the peripheral layout". Keys
// whose position does not differ between the two layouts are absent; absent
// characters pass through unchanged.
//
// The pairs are fixed reference data, not derived. A plain-text copy ships
// in testdata/seed_maps.golden and the golden test keeps the two in sync.

// seedMaps returns a fresh copy of all hub-to-peripheral seed tables.
func seedMaps() map[Layout]map[rune]rune {
	return map[Layout]map[rune]rune{
		Dvorak:  qwertyToDvorak(),
		Colemak: qwertyToColemak(),
		Russian: qwertyToRussian(),
	}
}

func qwertyToDvorak() map[rune]rune {
	return map[rune]rune{
		'q': '\'',
		'w': ',',
		'e': '.',
		'r': 'p',
		't': 'y',
		'y': 'f',
		'u': 'g',
		'i': 'c',
		'o': 'r',
		'p': 'l',
		's': 'o',
		'd': 'e',
		'f': 'u',
		'g': 'i',
		'h': 'd',
		'j': 'h',
		'k': 't',
		'l': 'n',
		'z': ';',
		'x': 'q',
		'c': 'j',
		'v': 'k',
		'b': 'x',
		'n': 'b',
		',': 'w',
		'.': 'v',
		';': 's',
		'/': 'z',
		'\'': '-',
		'[': '/',
		']': '=',
		'-': '[',
		'=': ']',

		'Q': '"',
		'W': '<',
		'E': '>',
		'R': 'P',
		'T': 'Y',
		'Y': 'F',
		'U': 'G',
		'I': 'C',
		'O': 'R',
		'P': 'L',
		'S': 'O',
		'D': 'E',
		'F': 'U',
		'G': 'I',
		'H': 'D',
		'J': 'H',
		'K': 'T',
		'L': 'N',
		'Z': ':',
		'X': 'Q',
		'C': 'J',
		'V': 'K',
		'B': 'X',
		'N': 'B',
		'<': 'W',
		'>': 'V',
		':': 'S',
		'?': 'Z',
		'"': '_',
		'{': '?',
		'}': '+',
		'_': '{',
		'+': '}',
	}
}

func qwertyToColemak() map[rune]rune {
	return map[rune]rune{
		'e': 'f',
		'r': 'p',
		't': 'g',
		'y': 'j',
		'u': 'l',
		'i': 'u',
		'o': 'y',
		'p': ';',
		's': 'r',
		'd': 's',
		'f': 't',
		'g': 'd',
		'h': 'h',
		'j': 'n',
		'k': 'e',
		'l': 'i',
		';': 'p',
		'\'': '-',
		'-': '\'',

		'E': 'F',
		'R': 'P',
		'T': 'G',
		'Y': 'J',
		'U': 'L',
		'I': 'U',
		'O': 'Y',
		'P': ':',
		'S': 'R',
		'D': 'S',
		'F': 'T',
		'G': 'D',
		'H': 'H',
		'J': 'N',
		'K': 'E',
		'L': 'I',
		':': 'P',
		'"': '_',
		'_': '"',
	}
}

func qwertyToRussian() map[rune]rune {
	return map[rune]rune{
		'q': 'й',
		'w': 'ц',
		'e': 'у',
		'r': 'к',
		't': 'е',
		'y': 'н',
		'u': 'г',
		'i': 'ш',
		'o': 'щ',
		'p': 'з',
		'[': 'х',
		']': 'ъ',
		'a': 'ф',
		's': 'ы',
		'd': 'в',
		'f': 'а',
		'g': 'п',
		'h': 'р',
		'j': 'о',
		'k': 'л',
		'l': 'д',
		';': 'ж',
		'\'': 'э',
		'z': 'я',
		'x': 'ч',
		'c': 'с',
		'v': 'м',
		'b': 'и',
		'n': 'т',
		'm': 'ь',
		',': 'б',
		'.': 'ю',
		'/': '.',

		'Q': 'Й',
		'W': 'Ц',
		'E': 'У',
		'R': 'К',
		'T': 'Е',
		'Y': 'Н',
		'U': 'Г',
		'I': 'Ш',
		'O': 'Щ',
		'P': 'З',
		'{': 'Х',
		'}': 'Ъ',
		'A': 'Ф',
		'S': 'Ы',
		'D': 'В',
		'F': 'А',
		'G': 'П',
		'H': 'Р',
		'J': 'О',
		'K': 'Л',
		'L': 'Д',
		':': 'Ж',
		'"': 'Э',
		'Z': 'Я',
		'X': 'Ч',
		'C': 'С',
		'V': 'М',
		'B': 'И',
		'N': 'Т',
		'M': 'Ь',
		'<': 'Б',
		'>': 'Ю',
		'?': ',',
	}
}
