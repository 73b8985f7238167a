package ses

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"net/mail"
	texttemplate "text/template"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"khata/internal/port"
)

var exportReadyText = texttemplate.Must(texttemplate.New("text").Parse(`Hi {{.ToName}},

Your {{.ReportName}} export ({{.Rows}} rows) is ready. Download it here:
{{.DownloadURL}}

The link expires after a while; export again from the app if it stops working.
`))

var exportReadyHTML = htmltemplate.Must(htmltemplate.New("html").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your export is ready</h2>
  <p>Hi {{.ToName}},</p>
  <p>Your {{.ReportName}} export with {{.Rows}} rows has been generated.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="{{.DownloadURL}}" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download</a>
  </p>
  <p style="word-break: break-all; color: #666;">{{.DownloadURL}}</p>
</body>
</html>`))

type sesSender struct {
	client *sesv2.Client
	from   string
}

// NewSESSender creates an SES-backed EmailSender for export notices.
func NewSESSender(ctx context.Context, region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	from := mail.Address{Name: fromName, Address: fromAddress}
	return &sesSender{client: sesv2.NewFromConfig(cfg), from: from.String()}, nil
}

func (s *sesSender) SendExportReady(ctx context.Context, notice port.ExportNotice) error {
	msg, err := exportReadyMessage(notice)
	if err != nil {
		return err
	}
	_, err = s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: []string{notice.ToEmail}},
		Content:          &types.EmailContent{Simple: msg},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func exportReadyMessage(n port.ExportNotice) (*types.Message, error) {
	var text, html bytes.Buffer
	if err := exportReadyText.Execute(&text, n); err != nil {
		return nil, fmt.Errorf("rendering export notice: %w", err)
	}
	if err := exportReadyHTML.Execute(&html, n); err != nil {
		return nil, fmt.Errorf("rendering export notice: %w", err)
	}
	return &types.Message{
		Subject: &types.Content{Data: aws.String(fmt.Sprintf("Your %s export is ready", n.ReportName))},
		Body: &types.Body{
			Text: &types.Content{Data: aws.String(text.String())},
			Html: &types.Content{Data: aws.String(html.String())},
		},
	}, nil
}
