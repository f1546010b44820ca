package mailer

import "html/template"

type otpData struct {
	Name    string
	Code    string
	Minutes int
	Year    int
	Heading string
	Intro   string
	Footer  string
}

const layoutCSS = `
body { font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px; }
.container { max-width: 500px; margin: 0 auto; background: white; border-radius: 10px; padding: 30px; }
.header { text-align: center; margin-bottom: 30px; }
.logo { font-size: 28px; font-weight: bold; color: #ff6b00; font-style: italic; }
.otp-box { background: #ff6b00; color: white; font-size: 36px; font-weight: bold; padding: 20px; text-align: center; border-radius: 8px; letter-spacing: 8px; }
.footer { text-align: center; margin-top: 20px; color: #888; font-size: 12px; }
`

var otpTmpl = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
<head><style>` + layoutCSS + `</style></head>
<body>
  <div class="container">
    <div class="header"><div class="logo">KICKSTREET</div></div>
    <h2>{{.Heading}}</h2>
    {{if .Name}}<p>Hi {{.Name}},</p>{{end}}
    <p>{{.Intro}}</p>
    <div class="otp-box">{{.Code}}</div>
    <p style="margin-top: 20px;">This OTP will expire in <strong>{{.Minutes}} minutes</strong>.</p>
    <div class="footer">
      <p>{{.Footer}}</p>
      <p>&copy; {{.Year}} KickStreet. All rights reserved.</p>
    </div>
  </div>
</body>
</html>`))

var announcementTmpl = template.Must(template.New("announcement").Parse(`<!DOCTYPE html>
<html>
<head><style>` + layoutCSS + `</style></head>
<body>
  <div class="container">
    <div class="header"><div class="logo">KICKSTREET</div></div>
    <h2>Just dropped: {{.ProductName}}</h2>
    {{if .Image}}<img src="{{.Image}}" alt="{{.ProductName}}" style="width: 100%; border-radius: 8px;">{{end}}
    <p style="font-size: 20px; font-weight: bold;">{{.Price}}</p>
    {{if .URL}}<p><a href="{{.URL}}">Shop now</a></p>{{end}}
    <div class="footer">
      <p>You are receiving this because you subscribed to the KickStreet newsletter.</p>
    </div>
  </div>
</body>
</html>`))
