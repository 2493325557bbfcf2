package roff

import (
	"time"

	"github.com/signadot/roff-format/go-roff/ir"
)

// CreationDateLayout is the layout of filedata.creationDate.
const CreationDateLayout = "02/01/2006 15:04:05"

// Metadata returns the conventional leading tags of a ROFF document: filedata
// with a byteswaptest, a generic filetype and a creation date, and version
// 2.0. Write does not add them by itself.
func Metadata(now time.Time) ir.Document {
	return ir.Document{
		ir.NewTag(ir.FiledataTag,
			ir.Key(ir.ByteswapTestKey, ir.FromInt(1)),
			ir.Key("filetype", ir.FromChar("generic")),
			ir.Key("creationDate", ir.FromChar(now.Format(CreationDateLayout))),
		),
		ir.NewTag(ir.VersionTag,
			ir.Key("major", ir.FromInt(2)),
			ir.Key("minor", ir.FromInt(0)),
		),
	}
}
