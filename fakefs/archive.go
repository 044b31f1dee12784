package fakefs

import (
	"github.com/rogpeppe/go-internal/txtar"

	"github.com/seamkit/seam/internal/vpath"
)

// FromArchive builds a fake seeded from a txtar archive, so filesystem
// fixtures can live as readable testdata files:
//
//	-- cfg.json --
//	{"x": 1}
//	-- data/input.csv --
//	a,b,c
func FromArchive(data []byte) *Fake {
	return New(Options{Archive: data})
}

// seedArchive loads txtar entries into the virtual set. txtar parsing is
// lenient (leading comment text is ignored), but a conflicting entry set
// is a broken fixture and panics, as in New.
func (f *Fake) seedArchive(data []byte) {
	archive := txtar.Parse(data)
	for _, file := range archive.Files {
		if err := f.putLocked(vpath.Clean(file.Name), file.Data, 0o644); err != nil {
			panic("fakefs: seed archive: " + err.Error())
		}
	}
}
