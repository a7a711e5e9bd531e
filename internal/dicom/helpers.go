package dicom

import (
	"fmt"
	"os"
	"strconv"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// mustNewElement creates a DICOM element, panicking on invalid input. Tags
// and value types are fixed at compile time here, so a failure is a
// programming error.
func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return elem
}

// ds formats a float for a DICOM decimal string. DS values are capped at 16
// bytes, so we keep 6 significant decimals.
func ds(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	if len(s) > 16 {
		s = s[:16]
	}
	return s
}

// is formats an integer string value.
func is(v int) string {
	return strconv.Itoa(v)
}

// writeDatasetToFile writes a DICOM dataset to a file.
func writeDatasetToFile(filename string, set dicom.Dataset, opts ...dicom.WriteOption) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer f.Close()
	return dicom.Write(f, set, opts...)
}
