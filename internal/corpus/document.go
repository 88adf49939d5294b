package corpus

import "time"

// Document is one regulation in the corpus. Text and LastAmended are
// normalized by Clean; everything else is carried through from the source
// table unchanged.
type Document struct {
	ID          string
	Text        string
	WordCount   int
	RawDate     string // date string as it appeared in the source table
	LastAmended time.Time
	Repealed    bool
}

// Cleaned reports whether the document has been through Clean: the date
// is parsed and the text is case-folded.
func (d *Document) Cleaned() bool {
	return !d.LastAmended.IsZero()
}

// AgeDays returns whole days elapsed between the document's last amendment
// and the reference date. The reference date is a fixed configuration value,
// never wall-clock time, so repeated runs over the same corpus agree.
func (d *Document) AgeDays(reference time.Time) int {
	return int(reference.Sub(d.LastAmended).Hours() / 24)
}
