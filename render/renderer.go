// Package render turns a resolved place record into display markup.
// Rendering is pure: no state, no I/O, and every dynamic value is escaped
// or coerced against an allow-list before it reaches the markup.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"localscoop-server/models"
	"localscoop-server/sanitize"
)

const VARIANT_CARDS = "cards"
const VARIANT_TOOLBAR = "toolbar"

var AllowedVariants = []string{VARIANT_CARDS, VARIANT_TOOLBAR}
var AllowedSizes = []string{"small", "medium", "large", "xlarge"}

// DisplayOptions carries the block attributes that affect rendering.
// Construct via DefaultDisplayOptions and coerce overrides through the
// sanitize package.
type DisplayOptions struct {
	Variant           string
	ShowOpenStatus    bool
	ShowPhone         bool
	ShowDirections    bool
	OpenStatusColor   string
	ClosedStatusColor string
	BackgroundColor   string
	StatusBadgeSize   string
	ButtonSize        string
}

// DefaultDisplayOptions mirrors the block's attribute defaults.
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{
		Variant:         VARIANT_CARDS,
		ShowOpenStatus:  true,
		ShowPhone:       true,
		ShowDirections:  true,
		StatusBadgeSize: "medium",
		ButtonSize:      "medium",
	}
}

// SampleRecord is the always-available fallback shown when no real data
// can be resolved.
func SampleRecord() *models.PlaceRecord {
	open := true
	return &models.PlaceRecord{
		Name:          "Local Business",
		Phone:         "(555) 123-4567",
		IsOpenNow:     &open,
		GoogleMapsURL: "https://maps.google.com",
	}
}

type templateData struct {
	Record *models.PlaceRecord
	Opts   DisplayOptions
	Style  template.CSS
	Open   bool
	Known  bool

	// PhoneHref is typed so the tel: scheme survives URL filtering;
	// attribute escaping still applies to the value itself.
	PhoneHref template.URL
}

var cardsTemplate = template.Must(template.New("cards").Parse(`<div class="localscoop-content" style="{{.Style}}">
<div class="localscoop-desktop">
{{- if and .Opts.ShowOpenStatus .Known}}
<div class="localscoop-card localscoop-status-card">
<div class="localscoop-status-indicator {{if .Open}}open{{else}}closed{{end}}"></div>
<div class="localscoop-status-text"><div class="localscoop-label">Status</div>
<div class="localscoop-value">{{if .Open}}OPEN{{else}}CLOSED{{end}}</div></div>
</div>
{{- end}}
{{- if and .Opts.ShowPhone .Record.Phone}}
<a href="{{.PhoneHref}}" class="localscoop-card localscoop-action-card localscoop-phone-card">
<div class="localscoop-action-text"><div class="localscoop-label">Call Us</div>
<div class="localscoop-value">{{.Record.Phone}}</div></div>
</a>
{{- end}}
{{- if and .Opts.ShowDirections .Record.GoogleMapsURL}}
<a href="{{.Record.GoogleMapsURL}}" target="_blank" rel="noopener noreferrer" class="localscoop-card localscoop-action-card localscoop-directions-card">
<div class="localscoop-action-text"><div class="localscoop-label">Navigate</div>
<div class="localscoop-value">GET DIRECTIONS</div></div>
</a>
{{- end}}
</div>
</div>
`))

var toolbarTemplate = template.Must(template.New("toolbar").Parse(`<div class="localscoop-content" style="{{.Style}}">
<div class="localscoop-mobile">
<div class="localscoop-mobile-content">
{{- if and .Opts.ShowOpenStatus .Known}}
<div class="localscoop-mobile-status">
<div class="localscoop-mobile-status-indicator {{if .Open}}open{{else}}closed{{end}}"></div>
<div class="localscoop-mobile-status-text">{{if .Open}}OPEN{{else}}CLOSED{{end}}</div>
</div>
{{- end}}
{{- if and .Opts.ShowPhone .Record.Phone}}
<a href="{{.PhoneHref}}" class="localscoop-mobile-action localscoop-mobile-phone">{{.Record.Phone}}</a>
{{- end}}
{{- if and .Opts.ShowDirections .Record.GoogleMapsURL}}
<a href="{{.Record.GoogleMapsURL}}" target="_blank" rel="noopener noreferrer" class="localscoop-mobile-action localscoop-mobile-directions">GET DIRECTIONS</a>
{{- end}}
</div>
</div>
</div>
`))

// Render produces markup for the record with the given options. Unknown
// option values fall back to their defaults rather than failing.
func Render(record *models.PlaceRecord, opts DisplayOptions) (string, error) {
	if record == nil {
		record = SampleRecord()
	}

	data := templateData{
		Record: record,
		Opts:   normalizeOptions(opts),
		Style:  inlineStyle(opts),
		Known:  record.IsOpenNow != nil,
	}
	if data.Known {
		data.Open = *record.IsOpenNow
	}
	if record.Phone != "" {
		data.PhoneHref = template.URL("tel:" + record.Phone)
	}

	tmpl := cardsTemplate
	if data.Opts.Variant == VARIANT_TOOLBAR {
		tmpl = toolbarTemplate
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s variant: %w", data.Opts.Variant, err)
	}
	return buf.String(), nil
}

func normalizeOptions(opts DisplayOptions) DisplayOptions {
	opts.Variant = sanitize.CoerceEnum(opts.Variant, AllowedVariants, VARIANT_CARDS)
	opts.StatusBadgeSize = sanitize.CoerceEnum(opts.StatusBadgeSize, AllowedSizes, "medium")
	opts.ButtonSize = sanitize.CoerceEnum(opts.ButtonSize, AllowedSizes, "medium")
	return opts
}

// inlineStyle assembles the CSS custom properties the stylesheet consumes.
// Only coerced values may enter; everything else is dropped.
func inlineStyle(opts DisplayOptions) template.CSS {
	var styles []string

	if c := sanitize.CoerceColor(opts.BackgroundColor); c != "" {
		styles = append(styles, "background-color: "+c)
	}
	if c := sanitize.CoerceColor(opts.OpenStatusColor); c != "" {
		styles = append(styles, "--open-status-color: "+c)
	}
	if c := sanitize.CoerceColor(opts.ClosedStatusColor); c != "" {
		styles = append(styles, "--closed-status-color: "+c)
	}
	styles = append(styles, "--status-badge-size: "+sanitize.CoerceEnum(opts.StatusBadgeSize, AllowedSizes, "medium"))
	styles = append(styles, "--button-size: "+sanitize.CoerceEnum(opts.ButtonSize, AllowedSizes, "medium"))

	return template.CSS(strings.Join(styles, "; "))
}
