package ses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/port"
)

func TestExportReadyMessage(t *testing.T) {
	msg, err := exportReadyMessage(port.ExportNotice{
		ToEmail:     "owner@shop.test",
		ToName:      "Sharma <Stores>",
		ReportName:  "invoices",
		DownloadURL: "https://exports.example.com/t/invoices.csv?X-Amz-Expires=900&X-Amz-Signature=abc",
		Rows:        42,
	})
	require.NoError(t, err)

	assert.Equal(t, "Your invoices export is ready", *msg.Subject.Data)
	assert.Contains(t, *msg.Body.Text.Data, "Hi Sharma <Stores>,")
	assert.Contains(t, *msg.Body.Text.Data, "(42 rows)")
	assert.Contains(t, *msg.Body.Text.Data, "X-Amz-Expires=900&X-Amz-Signature=abc")
	assert.Contains(t, *msg.Body.Html.Data, "Hi Sharma &lt;Stores&gt;,")
	assert.NotContains(t, *msg.Body.Html.Data, "<Stores>")
}
