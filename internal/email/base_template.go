package email

import (
	"bytes"
	"html/template"
	"time"
)

// BaseEmailData contains data for the base email wrapper
type BaseEmailData struct {
	Content template.HTML
	Subject string
	SiteURL string
	Year    int
}

const baseEmailTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Subject}}</title>
    <style>
        body {
            font-family: Georgia, 'Times New Roman', serif;
            line-height: 1.6;
            color: #2b2118;
            margin: 0;
            padding: 0;
            background-color: #f4efe6;
        }
        .email-wrapper {
            max-width: 600px;
            margin: 0 auto;
            background-color: #ffffff;
        }
        .header {
            background-color: #041e42;
            padding: 24px 30px;
        }
        .brand-name {
            font-size: 22px;
            font-weight: 700;
            letter-spacing: 2px;
            color: #ffffff;
            margin: 0;
        }
        .brand-tagline {
            font-size: 12px;
            color: rgba(255, 255, 255, 0.8);
            margin: 4px 0 0 0;
        }
        .content {
            padding: 30px;
        }
        .footer {
            background-color: #2b2118;
            color: #bfb3a3;
            padding: 24px 30px;
            font-size: 13px;
            text-align: center;
        }
        .footer a {
            color: #e8d8bf;
            text-decoration: none;
        }
    </style>
</head>
<body>
    <div class="email-wrapper">
        <div class="header">
            <p class="brand-name">NITTANY CRAFT.</p>
            <p class="brand-tagline">Custom photos, laser engraved on wood</p>
        </div>

        <div class="content">
            {{.Content}}
        </div>

        <div class="footer">
            <strong style="color: #fff;">Nittany Craft</strong><br>
            <a href="mailto:orders@nittanycraft.com">orders@nittanycraft.com</a>
            {{if .SiteURL}}<span style="margin: 0 8px;">&bull;</span><a href="{{.SiteURL}}">{{.SiteURL}}</a>{{end}}
            <div style="margin-top: 16px; font-size: 11px;">&copy; {{.Year}} Nittany Craft. All rights reserved.</div>
        </div>
    </div>
</body>
</html>
`

var baseTmpl = template.Must(template.New("base").Parse(baseEmailTemplate))

// WrapEmailContent wraps content in the base email template
func WrapEmailContent(content, subject, siteURL string) (string, error) {
	data := BaseEmailData{
		Content: template.HTML(content),
		Subject: subject,
		SiteURL: siteURL,
		Year:    time.Now().Year(),
	}

	var result bytes.Buffer
	if err := baseTmpl.Execute(&result, data); err != nil {
		return "", err
	}

	return result.String(), nil
}
