package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnLetter(t *testing.T) {
	cases := map[int]string{0: "", 1: "A", 6: "F", 26: "Z", 27: "AA", 52: "AZ", 53: "BA", 702: "ZZ", 703: "AAA"}
	for col, want := range cases {
		assert.Equal(t, want, ColumnLetter(col), "column %d", col)
	}
}

func TestRanges(t *testing.T) {
	assert.Equal(t, "'Form Responses 1'!F3", cellRange("Form Responses 1", 3, 6))
	assert.Equal(t, "'Dr''s List'!A1:F1", rowRange("Dr's List", 1, 6))
}
