package handlers

import "html/template"

// The confirmation pages are rendered server side from link data, so every
// client-sourced field goes through html/template escaping here too.

var confirmFormPage = template.Must(template.New("confirm-form").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Confirm booking - {{.Salon}}</title></head>
<body>
	<h1>Confirm booking</h1>
	<p><strong>{{.Req.Name}}</strong> asked for {{.Req.Service}}{{if .Req.Package}} ({{.Req.Package}}){{end}}
	on {{.Req.Date}} at {{.Req.Time}}.</p>
	<ul>
		<li>Email: {{.Req.Email}}</li>
		<li>Phone: {{.Req.Phone}}</li>
		{{if .Req.Note}}<li>Note: {{.Req.Note}}</li>{{end}}
	</ul>
	<form method="post" action="/confirm-booking">
		<label>Date <input type="date" name="finalDate" value="{{.Req.Date}}"></label>
		<label>Time <input type="time" name="finalTime" value="{{.Req.Time}}"></label>

		<input type="hidden" name="service" value="{{.Req.Service}}">
		<input type="hidden" name="package" value="{{.Req.Package}}">
		<input type="hidden" name="originalDate" value="{{.Req.Date}}">
		<input type="hidden" name="originalTime" value="{{.Req.Time}}">
		<input type="hidden" name="name" value="{{.Req.Name}}">
		<input type="hidden" name="email" value="{{.Req.Email}}">
		<input type="hidden" name="phone" value="{{.Req.Phone}}">
		<input type="hidden" name="note" value="{{.Req.Note}}">
		<input type="hidden" name="key" value="{{.Key}}">

		<button type="submit">Confirm booking</button>
	</form>
</body>
</html>
`))

var linkErrorPage = template.Must(template.New("link-error").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Salon}}</title></head>
<body>
	<h1>This link is invalid or has expired</h1>
	<p>Please check the link from your email or contact the salon directly.</p>
</body>
</html>
`))

var paymentConfirmedPage = template.Must(template.New("payment-confirmed").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Salon}}</title></head>
<body>
	<h1>Voucher confirmed</h1>
	<p>The voucher for {{.Name}} is marked as paid and both parties were notified.</p>
</body>
</html>
`))

var dispatchErrorPage = template.Must(template.New("dispatch-error").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Salon}}</title></head>
<body>
	<h1>Could not send notifications</h1>
	<p>The link is still valid. Please try again in a moment.</p>
</body>
</html>
`))
