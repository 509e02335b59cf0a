package canon

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// family groups the books that share a base name. Numbered books
// ("1 Samuel", "2 Samuel") resolve through byNumber; bare names through
// bare. John carries both: "John" is the gospel, "1 John" the epistle.
type family struct {
	bare     Book
	byNumber map[int]Book
}

// aliasSpec is the declarative alias table. The first alias in each
// entry is the primary abbreviation shown by `concord books`.
type aliasSpec struct {
	aliases  []string
	bare     Book
	numbered map[int]Book
}

var aliasSpecs = []aliasSpec{
	{aliases: []string{"GEN", "GENESIS", "GE", "GN"}, bare: Genesis},
	{aliases: []string{"EXOD", "EXODUS", "EXO", "EX"}, bare: Exodus},
	{aliases: []string{"LEV", "LEVITICUS", "LE", "LV"}, bare: Leviticus},
	{aliases: []string{"NUM", "NUMBERS", "NU", "NB"}, bare: Numbers},
	{aliases: []string{"DEUT", "DEUTERONOMY", "DEU", "DT"}, bare: Deuteronomy},
	{aliases: []string{"JOSH", "JOSHUA", "JOS"}, bare: Joshua},
	{aliases: []string{"JUDG", "JUDGES", "JDG", "JGS"}, bare: Judges},
	{aliases: []string{"RUTH", "RTH", "RU"}, bare: Ruth},
	{aliases: []string{"SAM", "SAMUEL", "SA", "SM"}, numbered: map[int]Book{1: Samuel1, 2: Samuel2}},
	{aliases: []string{"KGS", "KINGS", "KIN", "KI"}, numbered: map[int]Book{1: Kings1, 2: Kings2}},
	{aliases: []string{"CHRON", "CHRONICLES", "CHR", "CH"}, numbered: map[int]Book{1: Chronicles1, 2: Chronicles2}},
	{aliases: []string{"EZRA", "EZR"}, bare: Ezra},
	{aliases: []string{"NEH", "NEHEMIAH", "NE"}, bare: Nehemiah},
	{aliases: []string{"ESTH", "ESTHER", "EST", "ES"}, bare: Esther},
	{aliases: []string{"JOB", "JB"}, bare: Job},
	{aliases: []string{"PS", "PSALMS", "PSALM", "PSA", "PSS"}, bare: Psalms},
	{aliases: []string{"PROV", "PROVERBS", "PRO", "PRV"}, bare: Proverbs},
	{aliases: []string{"ECCL", "ECCLESIASTES", "ECC", "QOH"}, bare: Ecclesiastes},
	{aliases: []string{"SONG", "SONG OF SONGS", "SONGS", "SONG OF SOLOMON", "SOS", "CANTICLES"}, bare: SongOfSongs},
	{aliases: []string{"ISA", "ISAIAH", "IS"}, bare: Isaiah},
	{aliases: []string{"JER", "JEREMIAH", "JE", "JR"}, bare: Jeremiah},
	{aliases: []string{"LAM", "LAMENTATIONS", "LA"}, bare: Lamentations},
	{aliases: []string{"EZEK", "EZEKIEL", "EZE", "EZK"}, bare: Ezekiel},
	{aliases: []string{"DAN", "DANIEL", "DA", "DN"}, bare: Daniel},
	{aliases: []string{"HOS", "HOSEA", "HO"}, bare: Hosea},
	{aliases: []string{"JOEL", "JL"}, bare: Joel},
	{aliases: []string{"AMOS", "AM"}, bare: Amos},
	{aliases: []string{"OBAD", "OBADIAH", "OB"}, bare: Obadiah},
	{aliases: []string{"JONAH", "JNH"}, bare: Jonah},
	{aliases: []string{"MIC", "MICAH", "MC"}, bare: Micah},
	{aliases: []string{"NAH", "NAHUM", "NA"}, bare: Nahum},
	{aliases: []string{"HAB", "HABAKKUK", "HB"}, bare: Habakkuk},
	{aliases: []string{"ZEPH", "ZEPHANIAH", "ZEP", "ZP"}, bare: Zephaniah},
	{aliases: []string{"HAG", "HAGGAI", "HG"}, bare: Haggai},
	{aliases: []string{"ZECH", "ZECHARIAH", "ZEC", "ZC"}, bare: Zechariah},
	{aliases: []string{"MAL", "MALACHI", "ML"}, bare: Malachi},
	{aliases: []string{"MATT", "MATTHEW", "MAT", "MT"}, bare: Matthew},
	{aliases: []string{"MARK", "MRK", "MK"}, bare: Mark},
	{aliases: []string{"LUKE", "LUK", "LK"}, bare: Luke},
	{aliases: []string{"JOHN", "JHN", "JN"}, bare: John, numbered: map[int]Book{1: John1, 2: John2, 3: John3}},
	{aliases: []string{"ACTS", "ACT", "AC"}, bare: Acts},
	{aliases: []string{"ROM", "ROMANS", "RO", "RM"}, bare: Romans},
	{aliases: []string{"COR", "CORINTHIANS", "CO"}, numbered: map[int]Book{1: Corinthians1, 2: Corinthians2}},
	{aliases: []string{"GAL", "GALATIANS", "GA"}, bare: Galatians},
	{aliases: []string{"EPH", "EPHESIANS"}, bare: Ephesians},
	{aliases: []string{"PHIL", "PHILIPPIANS", "PHP"}, bare: Philippians},
	{aliases: []string{"COL", "COLOSSIANS"}, bare: Colossians},
	{aliases: []string{"THESS", "THESSALONIANS", "THES", "TH"}, numbered: map[int]Book{1: Thessalonians1, 2: Thessalonians2}},
	{aliases: []string{"TIM", "TIMOTHY", "TI"}, numbered: map[int]Book{1: Timothy1, 2: Timothy2}},
	{aliases: []string{"TITUS", "TIT"}, bare: Titus},
	{aliases: []string{"PHLM", "PHILEMON", "PHM"}, bare: Philemon},
	{aliases: []string{"HEB", "HEBREWS"}, bare: Hebrews},
	{aliases: []string{"JAS", "JAMES", "JM"}, bare: James},
	{aliases: []string{"PET", "PETER", "PE", "PT"}, numbered: map[int]Book{1: Peter1, 2: Peter2}},
	{aliases: []string{"JUDE", "JD"}, bare: Jude},
	{aliases: []string{"REV", "REVELATION", "RE", "APOCALYPSE"}, bare: Revelation},
}

// aliasTable maps a normalized alias to its family. Built once at init.
var aliasTable = buildAliasTable()

func buildAliasTable() map[string]family {
	table := make(map[string]family, 256)
	for _, spec := range aliasSpecs {
		fam := family{bare: spec.bare, byNumber: spec.numbered}
		for _, alias := range spec.aliases {
			table[alias] = fam
		}
	}
	return table
}

// Abbreviation returns the primary abbreviation for a book, e.g. "Gen"
// for Genesis or "1 Sam" for 1 Samuel.
func Abbreviation(b Book) string {
	for _, spec := range aliasSpecs {
		abbr := titleCase(spec.aliases[0])
		if spec.bare == b {
			return abbr
		}
		for n, nb := range spec.numbered {
			if nb == b {
				return strconv.Itoa(n) + " " + abbr
			}
		}
	}
	return b.String()
}

// NormalizeAlias canonicalizes a user-supplied book name fragment:
// uppercased, periods removed, interior whitespace collapsed.
func NormalizeAlias(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ".", "")
	return strings.Join(strings.Fields(s), " ")
}

// Match resolves a user-supplied book name to a Book.
//
// Matching proceeds in tiers: the name is first split into its base and
// optional ordinal ("1 Kings", "Kings 1", "1Kings" are all equivalent),
// then looked up exactly in the alias table, then fuzzily by edit
// distance. A fuzzy match is accepted only when a unique best candidate
// leads the runner-up by at least one edit; otherwise the match is
// reported as ambiguous.
func Match(s string) (Book, *MatchError) {
	name, number, ok := splitOrdinal(s)
	if !ok {
		return 0, &MatchError{Input: s}
	}

	key := NormalizeAlias(name)
	if key == "" {
		return 0, &MatchError{Input: s}
	}

	if fam, found := aliasTable[key]; found {
		if b, ok := fam.resolve(number); ok {
			return b, nil
		}
		return 0, &MatchError{Input: s}
	}

	return fuzzyMatch(s, key, number)
}

// resolve picks the concrete book for an ordinal within a family.
func (f family) resolve(number int) (Book, bool) {
	if number == 0 {
		if f.bare != 0 {
			return f.bare, true
		}
		return 0, false
	}
	b, ok := f.byNumber[number]
	return b, ok
}

// fuzzyMatch scans the whole alias table for near matches. Short inputs
// get a tighter distance budget so that noise like "Ddd" cannot land on
// a two-letter abbreviation.
func fuzzyMatch(input, key string, number int) (Book, *MatchError) {
	maxDist := 2
	if len(key) <= 5 {
		maxDist = 1
	}

	type candidate struct {
		book Book
		dist int
	}
	best := make(map[Book]int)

	for alias, fam := range aliasTable {
		b, ok := fam.resolve(number)
		if !ok {
			continue
		}
		d := editDistance(key, alias)
		if d > maxDist {
			continue
		}
		if cur, seen := best[b]; !seen || d < cur {
			best[b] = d
		}
	}

	if len(best) == 0 {
		return 0, &MatchError{Input: input}
	}

	candidates := make([]candidate, 0, len(best))
	for b, d := range best {
		candidates = append(candidates, candidate{book: b, dist: d})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].book < candidates[j].book
	})

	if len(candidates) > 1 && candidates[1].dist-candidates[0].dist < 1 {
		names := make([]string, 0, len(candidates))
		for _, c := range candidates {
			if c.dist == candidates[0].dist {
				names = append(names, c.book.String())
			}
		}
		return 0, &MatchError{Input: input, Ambiguous: names}
	}

	return candidates[0].book, nil
}

// MatchError reports a failed book-name match. Ambiguous is non-empty
// when several books tied within the fuzzy threshold.
type MatchError struct {
	Input     string
	Ambiguous []string
}

func (e *MatchError) Error() string {
	if len(e.Ambiguous) > 0 {
		return "ambiguous book name '" + truncate(e.Input, 20) + "' (could be " + strings.Join(e.Ambiguous, ", ") + ")"
	}
	return "unknown book '" + truncate(e.Input, 20) + "'"
}

// splitOrdinal separates a book name from its ordinal at the first
// numeric/non-numeric transition, so "1 Kings", "Kings 1" and "1Kings"
// all parse. Returns ok=false for a malformed ordinal such as "0 Kings".
func splitOrdinal(s string) (name string, number int, ok bool) {
	s = strings.TrimSpace(s)
	idx := numericTransition(s)
	if idx < 0 {
		return s, 0, true
	}

	left := strings.TrimSpace(s[:idx])
	right := strings.TrimSpace(s[idx:])
	numeric := right
	if strings.ContainsFunc(left, func(r rune) bool { return unicode.IsDigit(r) }) {
		name, numeric = right, left
	} else {
		name = left
	}

	n, err := strconv.Atoi(numeric)
	if err != nil || n <= 0 {
		return "", 0, false
	}
	return name, n, true
}

// numericTransition finds the first boundary between alphabetic and
// non-alphabetic (ignoring whitespace) characters, or -1 if none.
func numericTransition(s string) int {
	runes := []rune(s)
	if len(runes) == 0 {
		return -1
	}
	isAlpha := unicode.IsLetter(runes[0])
	offset := len(string(runes[0]))
	for _, r := range runes[1:] {
		if !unicode.IsSpace(r) && unicode.IsLetter(r) != isAlpha {
			return offset
		}
		offset += len(string(r))
	}
	return -1
}

// editDistance is the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	m, n := len(a), len(b)
	prev := make([]int, n+1)
	cur := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}
	for i := 1; i <= m; i++ {
		cur[0] = i
		for j := 1; j <= n; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = minInt(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[n]
}

func minInt(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if w == "of" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
