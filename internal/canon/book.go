// Package canon defines the fixed 66-book Protestant canon: the book
// enumeration, display names, abbreviation table, and book-name matching.
// The table is built once at init and never mutated.
package canon

// Book identifies a book of the Bible. Values are 1-based and follow
// canonical order, which is also the order used for tie-breaking and
// range iteration everywhere else in the engine.
type Book uint8

const (
	Genesis Book = iota + 1
	Exodus
	Leviticus
	Numbers
	Deuteronomy
	Joshua
	Judges
	Ruth
	Samuel1
	Samuel2
	Kings1
	Kings2
	Chronicles1
	Chronicles2
	Ezra
	Nehemiah
	Esther
	Job
	Psalms
	Proverbs
	Ecclesiastes
	SongOfSongs
	Isaiah
	Jeremiah
	Lamentations
	Ezekiel
	Daniel
	Hosea
	Joel
	Amos
	Obadiah
	Jonah
	Micah
	Nahum
	Habakkuk
	Zephaniah
	Haggai
	Zechariah
	Malachi
	Matthew
	Mark
	Luke
	John
	Acts
	Romans
	Corinthians1
	Corinthians2
	Galatians
	Ephesians
	Philippians
	Colossians
	Thessalonians1
	Thessalonians2
	Timothy1
	Timothy2
	Titus
	Philemon
	Hebrews
	James
	Peter1
	Peter2
	John1
	John2
	John3
	Jude
	Revelation
)

// FirstBook and LastBook bound the valid Book range.
const (
	FirstBook = Genesis
	LastBook  = Revelation
)

// bookNames maps Book values to display names, indexed by Book-1.
var bookNames = [...]string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel",
	"1 Kings", "2 Kings", "1 Chronicles", "2 Chronicles", "Ezra",
	"Nehemiah", "Esther", "Job", "Psalms", "Proverbs",
	"Ecclesiastes", "Song of Songs", "Isaiah", "Jeremiah", "Lamentations",
	"Ezekiel", "Daniel", "Hosea", "Joel", "Amos",
	"Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk",
	"Zephaniah", "Haggai", "Zechariah", "Malachi", "Matthew",
	"Mark", "Luke", "John", "Acts", "Romans",
	"1 Corinthians", "2 Corinthians", "Galatians", "Ephesians", "Philippians",
	"Colossians", "1 Thessalonians", "2 Thessalonians", "1 Timothy", "2 Timothy",
	"Titus", "Philemon", "Hebrews", "James", "1 Peter",
	"2 Peter", "1 John", "2 John", "3 John", "Jude",
	"Revelation",
}

// Valid reports whether b is within the canon.
func (b Book) Valid() bool {
	return b >= FirstBook && b <= LastBook
}

// String returns the display name, e.g. "1 Samuel" or "Song of Songs".
func (b Book) String() string {
	if !b.Valid() {
		return "Unknown"
	}
	return bookNames[b-1]
}

// All returns every book in canonical order.
func All() []Book {
	books := make([]Book, 0, int(LastBook))
	for b := FirstBook; b <= LastBook; b++ {
		books = append(books, b)
	}
	return books
}
