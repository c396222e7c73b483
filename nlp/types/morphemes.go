package types

import "sort"

func pos(id string, p PrimaryPos) *Morpheme {
	return &Morpheme{ID: id, Pos: p}
}

func infl(id string) *Morpheme {
	return &Morpheme{ID: id}
}

func deriv(id string) *Morpheme {
	return &Morpheme{ID: id, Derivational: true}
}

// Catalog of the morphemes known to the analysis model, keyed by id.
// POS morphemes carry the category they open; they follow a derivational
// morpheme in an analysis and seed the new group.
var catalog = map[string]*Morpheme{}

func register(ms ...*Morpheme) {
	for _, m := range ms {
		catalog[m.ID] = m
	}
}

func init() {
	// part of speech
	register(
		pos("Noun", Noun), pos("Adj", Adjective), pos("Adv", Adverb),
		pos("Conj", Conjunction), pos("Interj", Interjection),
		pos("Verb", Verb), pos("Pron", Pronoun), pos("Num", Numeral),
		pos("Det", Determiner), pos("Postp", PostPositive),
		pos("Ques", Question), pos("Dup", Duplicator),
		pos("Punc", Punctuation),
	)
	// agreement
	register(
		infl("A1sg"), infl("A2sg"), infl("A3sg"),
		infl("A1pl"), infl("A2pl"), infl("A3pl"),
	)
	// possession
	register(
		infl("Pnon"), infl("P1sg"), infl("P2sg"), infl("P3sg"),
		infl("P1pl"), infl("P2pl"), infl("P3pl"),
	)
	// case
	register(
		infl("Nom"), infl("Dat"), infl("Acc"), infl("Abl"), infl("Loc"),
		infl("Ins"), infl("Gen"), infl("Equ"),
	)
	// polarity, tense, aspect, mood, copula
	register(
		infl("Pos"), infl("Neg"), infl("Unable"),
		infl("Past"), infl("Narr"), infl("Cond"), infl("Prog1"), infl("Prog2"),
		infl("Aor"), infl("Fut"), infl("Imp"), infl("Opt"), infl("Desr"),
		infl("Neces"), infl("Pres"), infl("Cop"),
	)
	// derivation
	register(
		deriv("Pass"), deriv("Caus"), deriv("Recip"), deriv("Reflex"),
		deriv("Become"), deriv("Acquire"), deriv("Ness"), deriv("Dim"),
		deriv("With"), deriv("Without"), deriv("Rel"), deriv("Agt"),
		deriv("Ly"), deriv("Related"), deriv("JustLike"), deriv("FitFor"),
		deriv("Inf1"), deriv("Inf2"), deriv("Inf3"),
		deriv("PastPart"), deriv("PresPart"), deriv("FutPart"),
		deriv("NarrPart"), deriv("AorPart"), deriv("NotState"),
		deriv("FeelLike"), deriv("EverSince"), deriv("Repeat"),
		deriv("Almost"), deriv("Hastily"), deriv("Stay"), deriv("Start"),
		deriv("ByDoingSo"), deriv("AfterDoing"), deriv("WithoutHavingDoneSo"),
		deriv("WithoutBeingAbleToHaveDoneSo"), deriv("When"),
		deriv("SinceDoingSo"), deriv("AsIf"), deriv("While"),
		deriv("AsLongAs"), deriv("Adamantly"), deriv("Zero"), deriv("Able"),
		deriv("Ordinal"), deriv("Distrib"),
	)
}

// LookupMorpheme returns the catalog morpheme with the given id.
func LookupMorpheme(id string) (*Morpheme, bool) {
	m, exists := catalog[id]
	return m, exists
}

// MorphemeIDs lists every catalog id in sorted order.
func MorphemeIDs() []string {
	retval := make([]string, 0, len(catalog))
	for id := range catalog {
		retval = append(retval, id)
	}
	sort.Strings(retval)
	return retval
}
