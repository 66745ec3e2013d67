package notifier

import (
	"testing"

	"github.com/bassamadnan/triage/inquiry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	row := inquiry.Row{
		Index: 2, Timestamp: "T1", Name: "Jo <script>", Email: "jo@x.com",
		Symptoms: "pain > 7/10 & <b>swelling</b>\nsince Monday", Urgency: "High",
	}
	sum := inquiry.Summary{Summary: "Knee pain & swelling", Urgency: "Medium", Keywords: []string{"knee"}}

	msg, err := NewMessage(row, sum)
	require.NoError(t, err)

	t.Run("Should compose the subject from urgency and name", func(t *testing.T) {
		assert.Equal(t, "New Patient Inquiry - High - Jo <script>", msg.Subject)
	})

	t.Run("Should escape user content in the HTML body", func(t *testing.T) {
		assert.NotContains(t, msg.HTML, "<script>")
		assert.NotContains(t, msg.HTML, "<b>swelling</b>")
		assert.Contains(t, msg.HTML, "&lt;b&gt;swelling&lt;/b&gt;")
		assert.Contains(t, msg.HTML, "<h3>New Patient Inquiry</h3>")
		assert.Contains(t, msg.HTML, "Medium")
		assert.Contains(t, msg.HTML, "Knee pain &amp; swelling")
	})

	t.Run("Should escape Slack control characters", func(t *testing.T) {
		assert.Contains(t, msg.Text, "*New Patient Inquiry - High - Jo &lt;script&gt;*")
		assert.Contains(t, msg.Text, `"summary":"Knee pain &amp; swelling"`)
		assert.Contains(t, msg.Text, ">pain &gt; 7/10 &amp; &lt;b&gt;swelling&lt;/b&gt;\n>since Monday")
	})

	t.Run("Should default missing fields", func(t *testing.T) {
		msg, err := NewMessage(inquiry.Row{Index: 3}, inquiry.Summary{})
		require.NoError(t, err)
		assert.Equal(t, "New Patient Inquiry - Unknown - Unknown", msg.Subject)
		assert.Contains(t, msg.HTML, "<b>Name:</b> -<br>")
		assert.Contains(t, msg.Text, `"keywords":[]`)
	})
}
