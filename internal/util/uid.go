package util

import (
	"fmt"
	"hash/fnv"
)

// UID root for generated identifiers. 2.25 is the UUID-derived arc, which
// needs no registration.
const uidRoot = "2.25"

// GenerateDeterministicUID derives a DICOM UID from an arbitrary input
// string. The same input always yields the same UID, which keeps repeated
// runs byte-identical. Output stays well under the 64-byte UID limit.
func GenerateDeterministicUID(input string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(input)) // hash.Write never returns an error
	return fmt.Sprintf("%s.%d", uidRoot, h.Sum64())
}
