package lexicon

// Built-in word lists. These mirror the dictionaries commonly used in
// regulatory-text studies; a run can override any of them with a CSV file
// via configuration.
var defaults = map[string][]string{
	"prescriptions": {
		"shall",
		"must",
		"required",
		"prohibited",
		"may not",
		"shall not",
		"is to be",
		"obliged",
	},
	"permissions": {
		"may",
		"can",
		"permitted",
		"allowed",
		"authorised",
		"authorized",
		"entitled",
	},
	"exceptions": {
		"except",
		"unless",
		"provided that",
		"notwithstanding",
		"subject to",
		"other than",
		"save for",
	},
	"discretions": {
		"discretion",
		"as appropriate",
		"deems",
		"considers necessary",
		"reasonable",
		"where practicable",
		"at the option of",
	},
	"jargon": {
		"hereinafter",
		"herein",
		"thereof",
		"thereto",
		"whereas",
		"pursuant to",
		"aforesaid",
		"mutatis mutandis",
		"inter alia",
	},
	"crossrefs": {
		"pursuant to section",
		"referred to in",
		"as defined in",
		"under subsection",
		"in accordance with",
		"within the meaning of",
		"specified in schedule",
	},
	"outdated": {
		"telegraph",
		"telegram",
		"facsimile",
		"telex",
		"microfiche",
		"typewriter",
		"wireless telegraphy",
		"gramophone",
	},
}

// Default returns the built-in list for a canonical lexicon name. Unknown
// names return an empty lexicon; LoadSet validates names before reaching
// here.
func Default(name string) Lexicon {
	phrases := defaults[name]
	out := make([]string, len(phrases))
	copy(out, phrases)
	return Lexicon{Name: name, Phrases: out}
}
