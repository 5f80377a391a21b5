package email

// adminOrderContentTemplate is the content section for the workshop's order notification
const adminOrderContentTemplate = `
<h1 style="color: #041e42; margin: 0 0 10px 0; font-size: 24px;">New Custom Engraving Order</h1>
<p style="color: #6b5d4f; margin: 0 0 25px 0;">A customer has paid for a laser engraving. Both images are attached.</p>

<div style="background-color: #f4efe6; padding: 20px; border-radius: 8px; border-left: 4px solid #041e42; margin-bottom: 25px;">
    <p style="margin: 5px 0;"><strong>Order:</strong> {{.OrderID}}</p>
    <p style="margin: 5px 0;"><strong>Placed:</strong> {{.PlacedAt}}</p>
    <p style="margin: 5px 0;"><strong>Customer:</strong> {{if .CustomerEmail}}<a href="mailto:{{.CustomerEmail}}">{{.CustomerEmail}}</a>{{else}}not provided{{end}}</p>
    <p style="margin: 5px 0;"><strong>Amount:</strong> {{.Amount}}</p>
</div>

<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
    <tr>
        <td style="padding: 8px; vertical-align: top; width: 50%;">
            <p style="margin: 0 0 6px 0; font-weight: bold;">Original photo</p>
            <a href="{{.OriginalURL}}"><img src="{{.OriginalURL}}" alt="Original photo" style="max-width: 100%; border-radius: 4px;"></a>
        </td>
        <td style="padding: 8px; vertical-align: top; width: 50%;">
            <p style="margin: 0 0 6px 0; font-weight: bold;">Engraving preview</p>
            <a href="{{.ProcessedURL}}"><img src="{{.ProcessedURL}}" alt="Engraving preview" style="max-width: 100%; border-radius: 4px;"></a>
        </td>
    </tr>
</table>

{{if .Attachments}}
<h2 style="color: #041e42; font-size: 18px;">Attachments</h2>
<ul>
    {{range .Attachments}}<li>{{.}}</li>{{end}}
</ul>
{{end}}
`

// customerOrderContentTemplate is the content section for the customer's confirmation
const customerOrderContentTemplate = `
<div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #041e42; margin: 0; font-size: 26px;">Thank you for your order!</h1>
    <p style="font-size: 17px; color: #6b5d4f; margin: 10px 0;">Your photo is headed to the laser.</p>
</div>

<div style="background-color: #f4efe6; padding: 20px; border-radius: 8px; margin-bottom: 25px;">
    <p style="margin: 5px 0;"><strong>Order:</strong> {{.OrderID}}</p>
    <p style="margin: 5px 0;"><strong>Item:</strong> Custom Laser Engraving</p>
    <p style="margin: 5px 0;"><strong>Total:</strong> {{.Amount}}</p>
</div>

<p style="text-align: center;">
    <img src="{{.ProcessedURL}}" alt="Your engraving preview" style="max-width: 100%; border-radius: 4px;">
</p>

<h2 style="color: #041e42; font-size: 18px;">What happens next</h2>
<p>We hand-check every design before it is engraved, then finish the wood and ship it to you.
Reply to this email if you have any questions about your order.</p>
`
