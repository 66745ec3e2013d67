package sheets

import (
	"fmt"
	"strings"
)

// ColumnLetter converts a 1-based column number to its A1 letters: 1 is A, 27 is AA.
func ColumnLetter(col int) string {
	if col < 1 {
		return ""
	}
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

// quoteTitle quotes a sheet title for use in an A1 range.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// cellRange is the A1 reference of a single 1-based cell on a sheet.
func cellRange(title string, row, col int) string {
	return fmt.Sprintf("%s!%s%d", quoteTitle(title), ColumnLetter(col), row)
}

// rowRange spans n cells of a 1-based row starting at column A.
func rowRange(title string, row, n int) string {
	return fmt.Sprintf("%s!A%d:%s%d", quoteTitle(title), row, ColumnLetter(n), row)
}
