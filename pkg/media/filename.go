package media

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"github.com/chirpnet/chirpd/pkg/models"
)

// SanitizeFilename normalizes a client-provided filename into a storable
// media name. Path separators are stripped, empty names are replaced with a
// random hex identifier, and names longer than models.MaxMediaNameLength
// runes are compacted keeping the head and tail of the original.
func SanitizeFilename(name string) string {
	if name == "" {
		return newHexName()
	}

	name = strings.NewReplacer("/", "", "\\", "").Replace(name)
	if name == "" {
		return newHexName()
	}

	runes := []rune(name)
	if len(runes) <= models.MaxMediaNameLength {
		return name
	}

	return cutOff(runes, models.MaxMediaNameLength)
}

// cutOff compacts a long name to maxLength runes by keeping its head and
// tail joined with a doubled separator: "averylongfilename.png" becomes
// "averylong__ename.png".
func cutOff(runes []rune, maxLength int) string {
	cut := maxLength/2 - 1

	return string(runes[:cut]) + "__" + string(runes[len(runes)-cut:])
}

func newHexName() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
