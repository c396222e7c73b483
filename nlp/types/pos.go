package types

// PrimaryPos is the main part-of-speech category of a dictionary item or
// the category a derivational morpheme moves the word into. The value is
// the short form used in rendered analyses; the zero value renders as "".
type PrimaryPos string

const (
	Noun         PrimaryPos = "Noun"
	Adjective    PrimaryPos = "Adj"
	Adverb       PrimaryPos = "Adv"
	Conjunction  PrimaryPos = "Conj"
	Interjection PrimaryPos = "Interj"
	Verb         PrimaryPos = "Verb"
	Pronoun      PrimaryPos = "Pron"
	Numeral      PrimaryPos = "Num"
	Determiner   PrimaryPos = "Det"
	PostPositive PrimaryPos = "Postp"
	Question     PrimaryPos = "Ques"
	Duplicator   PrimaryPos = "Dup"
	Punctuation  PrimaryPos = "Punc"
	UnknownPos   PrimaryPos = "Unk"
)

var primaryPosValues = []PrimaryPos{
	Noun, Adjective, Adverb, Conjunction, Interjection, Verb, Pronoun,
	Numeral, Determiner, PostPositive, Question, Duplicator, Punctuation,
	UnknownPos,
}

func (p PrimaryPos) String() string {
	return string(p)
}

// SecondaryPos refines a PrimaryPos (proper noun, personal pronoun, time
// noun...). The zero value is equivalent to None.
type SecondaryPos string

const (
	None              SecondaryPos = "None"
	UnknownSec        SecondaryPos = "UnknownSec"
	DemonstrativePron SecondaryPos = "Demons"
	Time              SecondaryPos = "Time"
	QuantitivePron    SecondaryPos = "Quant"
	QuestionPron      SecondaryPos = "Ques"
	ProperNoun        SecondaryPos = "Prop"
	PersonalPron      SecondaryPos = "Pers"
	ReflexivePron     SecondaryPos = "Reflex"
	Ordinal           SecondaryPos = "Ord"
	Cardinal          SecondaryPos = "Card"
	Percentage        SecondaryPos = "Percent"
	Ratio             SecondaryPos = "Ratio"
	Range             SecondaryPos = "Range"
	Real              SecondaryPos = "Real"
	Distribution      SecondaryPos = "Dist"
	Clock             SecondaryPos = "Clock"
	Date              SecondaryPos = "Date"
	Email             SecondaryPos = "Email"
	Url               SecondaryPos = "Url"
	Mention           SecondaryPos = "Mention"
	HashTag           SecondaryPos = "HashTag"
	Emoticon          SecondaryPos = "Emoticon"
	RomanNumeral      SecondaryPos = "RomanNumeral"
	Abbreviation      SecondaryPos = "Abbrv"
	PCDative          SecondaryPos = "PCDat"
	PCAccusative      SecondaryPos = "PCAcc"
	PCInstrumental    SecondaryPos = "PCIns"
	PCNominative      SecondaryPos = "PCNom"
	PCGenitive        SecondaryPos = "PCGen"
	PCAblative        SecondaryPos = "PCAbl"
)

var secondaryPosValues = []SecondaryPos{
	None, UnknownSec, DemonstrativePron, Time, QuantitivePron, QuestionPron,
	ProperNoun, PersonalPron, ReflexivePron, Ordinal, Cardinal, Percentage,
	Ratio, Range, Real, Distribution, Clock, Date, Email, Url, Mention,
	HashTag, Emoticon, RomanNumeral, Abbreviation, PCDative, PCAccusative,
	PCInstrumental, PCNominative, PCGenitive, PCAblative,
}

func (s SecondaryPos) String() string {
	if s == "" {
		return string(None)
	}
	return string(s)
}

// IsNone reports whether s carries no secondary category.
func (s SecondaryPos) IsNone() bool {
	return s == "" || s == None
}

// ParsePrimaryPos resolves a short form such as "Adv" to its PrimaryPos.
func ParsePrimaryPos(s string) (PrimaryPos, bool) {
	for _, p := range primaryPosValues {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// ParseSecondaryPos resolves a short form such as "Time" to its
// SecondaryPos. The empty string resolves to None.
func ParseSecondaryPos(s string) (SecondaryPos, bool) {
	if s == "" {
		return None, true
	}
	for _, p := range secondaryPosValues {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}
