package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	subjectClaimAssembledFmt = "Claim draft ready: %s"
	subjectClaimFinalizedFmt = "Claim submitted: %s"
)

type baseEmailData struct {
	Title   string
	Heading string
}

// ClaimAssembledEmailData feeds the claim-assembled template.
type ClaimAssembledEmailData struct {
	baseEmailData
	ClaimName      string
	IncidentType   string
	ItemCount      int
	TotalFormatted string
}

// ClaimFinalizedEmailData feeds the claim-finalized template.
type ClaimFinalizedEmailData struct {
	baseEmailData
	ClaimName      string
	IncidentType   string
	ItemCount      int
	TotalFormatted string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatCurrencyUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
