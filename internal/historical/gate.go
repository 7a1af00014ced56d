package historical

import (
	"github.com/ppiankov/ghostwriter/internal/model"
	"github.com/ppiankov/ghostwriter/internal/util"
)

// ShouldProceed reports whether work on a figure may continue. Verified
// figures always proceed; anything else, including a missing verification,
// needs an explicit override.
func ShouldProceed(v *model.Verification, override bool) bool {
	if v != nil && v.IsVerified() {
		return true
	}
	return override
}

// AuthorIDFromName derives an author ID such as "mark_twain" from a figure name
func AuthorIDFromName(name string) string {
	return util.Slug(name, 0)
}
