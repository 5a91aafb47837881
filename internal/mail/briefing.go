package mail

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"insightgraph/internal/model"
)

// Briefing is a rendered digest of briefing cards.
type Briefing struct {
	Subject string
	Text    string
	HTML    string
}

var briefingHTML = template.Must(template.New("briefing").Parse(`<h2>{{.Title}}</h2>
{{range .Cards}}<div>
<h3>{{.Domain}}: {{.Title}}</h3>
<p>{{.Summary}}</p>
<p><small>importance {{.Importance}} &middot; confidence {{printf "%.2f" .Confidence}} &middot; {{.Timestamp}} &middot; node {{.InvestigateNodeID}}</small></p>
</div>
{{else}}<p>No briefing cards yet.</p>
{{end}}`))

// ComposeBriefing renders the subject and bodies for the tenant's cards.
func ComposeBriefing(meta model.Meta, cards []model.BriefingCard) (Briefing, error) {
	title := fmt.Sprintf("Briefing for %s as of %s", meta.Tenant, meta.AsOf)

	var text strings.Builder
	text.WriteString(title)
	text.WriteString("\n\n")
	if len(cards) == 0 {
		text.WriteString("No briefing cards yet.\n")
	}
	for _, card := range cards {
		fmt.Fprintf(&text, "[%s] %s\n  %s\n  importance=%s confidence=%.2f at=%s node=%s\n\n",
			card.Domain, card.Title, card.Summary, card.Importance, card.Confidence, card.Timestamp, card.InvestigateNodeID)
	}

	var html strings.Builder
	if err := briefingHTML.Execute(&html, struct {
		Title string
		Cards []model.BriefingCard
	}{title, cards}); err != nil {
		return Briefing{}, fmt.Errorf("rendering briefing: %w", err)
	}

	return Briefing{
		Subject: fmt.Sprintf("[%s] %d briefing cards", meta.Tenant, len(cards)),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

// SendBriefing composes the digest and sends it to one recipient.
func SendBriefing(ctx context.Context, s Sender, to EmailAddress, meta model.Meta, cards []model.BriefingCard) (*SendEmailResult, error) {
	b, err := ComposeBriefing(meta, cards)
	if err != nil {
		return nil, err
	}
	return s.Send(ctx, SendEmailRequest{
		To:         []EmailAddress{to},
		Subject:    b.Subject,
		Text:       b.Text,
		HTML:       b.HTML,
		Categories: []string{"briefing"},
	})
}
