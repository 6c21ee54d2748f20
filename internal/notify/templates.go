package notify

import "html/template"

type event int

const (
	eventBookingRequested event = iota
	eventBookingConfirmed
	eventVoucherOrdered
	eventVoucherPaid
)

type party int

const (
	partyOwner party = iota
	partyCustomer
)

type templateKey struct {
	event event
	party party
}

// bookingView is the render context for booking templates. Every field that
// originates from client input passes through html/template's contextual
// escaping; that escaping is the injection control for this whole component.
type bookingView struct {
	Salon   string
	Name    string
	Email   string
	Phone   string
	Service string
	Package string
	Date    string
	Time    string
	Note    string

	FinalDate  string
	FinalTime  string
	ConfirmURL string
}

type voucherView struct {
	Salon   string
	Name    string
	Email   string
	Phone   string
	Type    string
	Amount  string
	Service string
	Package string
	Message string
	Payment string

	ConfirmURL string
}

var htmlTemplates = map[templateKey]*template.Template{
	{eventBookingRequested, partyOwner}: tmpl("booking-requested-owner", `
		<h2>New booking request</h2>
		<p><strong>{{.Name}}</strong> asked for an appointment.</p>
		<ul>
			<li>Service: {{.Service}}{{if .Package}} ({{.Package}}){{end}}</li>
			<li>Requested date: {{.Date}} at {{.Time}}</li>
			<li>Email: {{.Email}}</li>
			<li>Phone: {{.Phone}}</li>
			{{if .Note}}<li>Note: {{.Note}}</li>{{end}}
		</ul>
		<p><a href="{{.ConfirmURL}}" style="background-color: #b08d57; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Review and confirm</a></p>
		<p>Or open this link: {{.ConfirmURL}}</p>
	`),
	{eventBookingRequested, partyCustomer}: tmpl("booking-requested-customer", `
		<h2>We received your request</h2>
		<p>Hi {{.Name}},</p>
		<p>Thank you for booking {{.Service}}{{if .Package}} ({{.Package}}){{end}} at {{.Salon}}.</p>
		<p>You asked for {{.Date}} at {{.Time}}. We will confirm the exact time by email shortly.</p>
	`),
	{eventBookingConfirmed, partyOwner}: tmpl("booking-confirmed-owner", `
		<h2>Booking confirmed</h2>
		<p>You confirmed {{.Name}} for {{.Service}}{{if .Package}} ({{.Package}}){{end}}.</p>
		<ul>
			<li>Date: {{.FinalDate}} at {{.FinalTime}}</li>
			<li>Client: {{.Name}}, {{.Phone}}, {{.Email}}</li>
		</ul>
		<p>The appointment is attached as a calendar invite.</p>
	`),
	{eventBookingConfirmed, partyCustomer}: tmpl("booking-confirmed-customer", `
		<h2>Your booking is confirmed</h2>
		<p>Hi {{.Name}},</p>
		<p>Your appointment for {{.Service}}{{if .Package}} ({{.Package}}){{end}} at {{.Salon}} is confirmed
		for <strong>{{.FinalDate}} at {{.FinalTime}}</strong>.</p>
		<p>A calendar invite is attached. We look forward to seeing you.</p>
	`),
	{eventVoucherOrdered, partyOwner}: tmpl("voucher-ordered-owner", `
		<h2>New gift voucher order</h2>
		<ul>
			<li>Recipient: {{.Name}} ({{.Email}}{{if .Phone}}, {{.Phone}}{{end}})</li>
			<li>Type: {{.Type}}</li>
			{{if .Amount}}<li>Amount: {{.Amount}} Kc</li>{{end}}
			{{if .Service}}<li>Service: {{.Service}}{{if .Package}} ({{.Package}}){{end}}</li>{{end}}
			<li>Payment method: {{.Payment}}</li>
			{{if .Message}}<li>Message: {{.Message}}</li>{{end}}
		</ul>
		<p><a href="{{.ConfirmURL}}" style="background-color: #b08d57; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Mark as paid</a></p>
		<p>Or open this link: {{.ConfirmURL}}</p>
	`),
	{eventVoucherOrdered, partyCustomer}: tmpl("voucher-ordered-customer", `
		<h2>We received your voucher order</h2>
		<p>Hi {{.Name}},</p>
		<p>Thank you for ordering a {{.Type}} voucher{{if .Amount}} for {{.Amount}} Kc{{end}}{{if .Service}} for {{.Service}}{{end}} at {{.Salon}}.</p>
		<p>We will confirm it as soon as the payment ({{.Payment}}) arrives.</p>
	`),
	{eventVoucherPaid, partyOwner}: tmpl("voucher-paid-owner", `
		<h2>Voucher marked as paid</h2>
		<p>The voucher for {{.Name}} ({{.Email}}) is settled.</p>
		{{if .Amount}}<p>Amount: {{.Amount}} Kc</p>{{end}}
		{{if .Service}}<p>Service: {{.Service}}</p>{{end}}
	`),
	{eventVoucherPaid, partyCustomer}: tmpl("voucher-paid-customer", `
		<h2>Your voucher is confirmed</h2>
		<p>Hi {{.Name}},</p>
		<p>We received your payment. Your {{.Type}} voucher{{if .Amount}} for {{.Amount}} Kc{{end}}{{if .Service}} for {{.Service}}{{end}} is ready.</p>
		{{if .Message}}<p>Your message: {{.Message}}</p>{{end}}
		<p>Thank you, {{.Salon}}</p>
	`),
}

func tmpl(name, body string) *template.Template {
	return template.Must(template.New(name).Parse(body))
}
