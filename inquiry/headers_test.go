package inquiry

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveHeaders(t *testing.T) {
	t.Run("Should resolve canonical headers directly", func(t *testing.T) {
		hm, err := ResolveHeaders([]string{"Timestamp", "Name", "Email", "Symptoms", "Urgency"})
		require.NoError(t, err)
		for i, field := range CanonicalFields {
			assert.Equal(t, Column{Name: field, Index: i}, hm[field])
		}
	})

	t.Run("Should resolve aliases in any case and padding", func(t *testing.T) {
		headers := []string{"  DATE/TIME", "Full Name ", "e-Mail", " Patient Message", "How Urgent"}
		hm, err := ResolveHeaders(headers)
		require.NoError(t, err)
		assert.Equal(t, "  DATE/TIME", hm[FieldTimestamp].Name)
		assert.Equal(t, 1, hm[FieldName].Index)
		assert.Equal(t, 2, hm[FieldEmail].Index)
		assert.Equal(t, 3, hm[FieldSymptoms].Index)
		assert.Equal(t, 4, hm[FieldUrgency].Index)
	})

	t.Run("Should resolve every alias of every field", func(t *testing.T) {
		for _, field := range CanonicalFields {
			for _, alias := range Aliases[field] {
				headers := []string{}
				for _, other := range CanonicalFields {
					if other == field {
						headers = append(headers, "  "+strings.ToUpper(alias)+" ")
					} else {
						headers = append(headers, other)
					}
				}
				hm, err := ResolveHeaders(headers)
				require.NoError(t, err, "alias %q", alias)
				assert.Equal(t, "  "+strings.ToUpper(alias)+" ", hm[field].Name)
			}
		}
	})

	t.Run("Should let alias order decide between ambiguous headers", func(t *testing.T) {
		headers := []string{"Timestamp", "Name", "Email", "Notes", "Description", "Message", "Priority", "Severity"}
		hm, err := ResolveHeaders(headers)
		require.NoError(t, err)
		assert.Equal(t, "Message", hm[FieldSymptoms].Name)
		assert.Equal(t, "Priority", hm[FieldUrgency].Name)
	})

	t.Run("Should prefer an exact canonical header over aliases", func(t *testing.T) {
		headers := []string{"Date", "Timestamp", "Name", "Email", "Symptoms", "Urgency"}
		hm, err := ResolveHeaders(headers)
		require.NoError(t, err)
		assert.Equal(t, 1, hm[FieldTimestamp].Index)
	})

	t.Run("Should name exactly the unresolved fields", func(t *testing.T) {
		headers := []string{"When", "Name", "Email", "Question", "Urgency", "Processed"}
		_, err := ResolveHeaders(headers)
		require.Error(t, err)

		var missingErr *MissingRequiredColumnError
		require.True(t, errors.As(err, &missingErr))
		assert.Equal(t, []string{FieldTimestamp, FieldSymptoms}, missingErr.Missing)
		assert.Equal(t, headers, missingErr.Available)
		assert.Contains(t, err.Error(), "Timestamp, Symptoms")
		assert.Contains(t, err.Error(), "Question")
	})

	t.Run("Should fail on an empty header row", func(t *testing.T) {
		_, err := ResolveHeaders(nil)
		var missingErr *MissingRequiredColumnError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, CanonicalFields, missingErr.Missing)
	})
}

func TestIndexOf(t *testing.T) {
	headers := []string{"Name", "Processed"}
	assert.Equal(t, 1, IndexOf(headers, "Processed"))
	assert.Equal(t, -1, IndexOf(headers, "processed"))
}
