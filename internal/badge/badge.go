// Package badge renders the embeddable company badge as SVG.
//
// Ranks 1-3 get a medal card ("#N Trending Startup"); every other rank gets
// the "Featured on TechStartups" card with the subscriber count. Both cards
// are Width x Height; embed snippets declare the same size.
package badge

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"text/template"
)

const (
	Width  = 280
	Height = 60
)

var (
	ErrAsset       = errors.New("badge asset unavailable")
	ErrInvalidRank = errors.New("badge rank must be positive")
)

// Spec is everything a badge depends on. Rank and Subscribers come from the
// ranking; CompanyURL is where the card links.
type Spec struct {
	CompanyURL  string
	Rank        int
	Subscribers int
	Theme       Theme
}

// Renderer draws badges. Logos are read from assets on every featured
// render; there is no caching here.
type Renderer struct {
	assets fs.FS
}

func NewRenderer(assets fs.FS) *Renderer { return &Renderer{assets: assets} }

func (r *Renderer) Render(spec Spec) ([]byte, error) {
	if spec.Rank < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRank, spec.Rank)
	}
	theme := ParseTheme(string(spec.Theme))
	data := cardData{
		Width:      Width,
		Height:     Height,
		CompanyURL: html.EscapeString(spec.CompanyURL),
		Palette:    palettes[theme],
	}

	tmpl := featuredTmpl
	if m, ok := medals[spec.Rank]; ok {
		tmpl = rankingTmpl
		data.Medal = m
		data.Title = fmt.Sprintf("#%d Trending Startup", spec.Rank)
	} else {
		l := logos[theme]
		raw, err := fs.ReadFile(r.assets, l.File)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrAsset, l.File, err)
		}
		data.Logo = l
		data.LogoURI = "data:" + l.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(raw)
		data.Subscribers = spec.Subscribers
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render badge: %w", err)
	}
	return buf.Bytes(), nil
}

// EmbedSnippet is the copy-paste HTML pointing at the badge endpoint.
func EmbedSnippet(baseURL, companySlug, companyName string, theme Theme) string {
	return fmt.Sprintf(
		`<a href="%s/company/%s" target="_blank"><img src="%s/api/badge?slug=%s&theme=%s" alt="%s - TechStartups" style="width: %dpx; height: %dpx;" width="%d" height="%d" /></a>`,
		baseURL, companySlug, baseURL, companySlug, ParseTheme(string(theme)), html.EscapeString(companyName),
		Width, Height, Width, Height,
	)
}

type cardData struct {
	Width, Height int
	CompanyURL    string
	Palette       palette
	Title         string
	Medal         medal
	Logo          logo
	LogoURI       string
	Subscribers   int
}

const font = `font-family="system-ui, -apple-system, sans-serif"`

const frame = `{{define "frame"}}<rect width="{{.Width}}" height="{{.Height}}" rx="16" fill="{{.Palette.Background}}"/>
    <rect x="1" y="1" width="{{sub .Width 2}}" height="{{sub .Height 2}}" rx="15" stroke="{{.Palette.Border}}" stroke-width="2"/>{{end}}`

var funcs = template.FuncMap{"sub": func(a, b int) int { return a - b }}

var rankingTmpl = template.Must(template.New("ranking").Funcs(funcs).Parse(frame + `<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" fill="none" xmlns="http://www.w3.org/2000/svg">
  <a href="{{.CompanyURL}}" target="_blank" rel="noopener noreferrer">
    {{template "frame" .}}
    <g transform="translate(16, 15)">
      <path d="M 8 0 L 12 8 L 15 6 L 15 0 Z" fill="{{.Medal.Main}}"/>
      <path d="M 22 0 L 18 8 L 15 6 L 15 0 Z" fill="{{.Medal.Shadow}}"/>
      <circle cx="15" cy="15" r="12" fill="{{.Medal.Main}}"/>
      <circle cx="15" cy="15" r="10" fill="{{.Medal.Shadow}}"/>
      <text x="15" y="21" fill="{{.Palette.Background}}" font-size="14" ` + font + ` font-weight="700" text-anchor="middle">{{.Medal.Digit}}</text>
    </g>
    <text x="52" y="22" fill="{{.Palette.TextSecondary}}" font-size="10" ` + font + ` font-weight="500" letter-spacing="0.5">TECHSTARTUPS</text>
    <text x="52" y="44" fill="{{.Palette.TextPrimary}}" font-size="20" ` + font + ` font-weight="700">{{.Title}}</text>
  </a>
</svg>`))

var featuredTmpl = template.Must(template.New("featured").Funcs(funcs).Parse(frame + `<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" fill="none" xmlns="http://www.w3.org/2000/svg">
  <a href="{{.CompanyURL}}" target="_blank" rel="noopener noreferrer">
    {{template "frame" .}}
    <image x="{{.Logo.X}}" y="{{.Logo.Y}}" width="{{.Logo.Size}}" height="{{.Logo.Size}}" href="{{.LogoURI}}"/>
    <text x="52" y="22" fill="{{.Palette.TextSecondary}}" font-size="10" ` + font + ` font-weight="500" letter-spacing="0.5">FEATURED ON</text>
    <text x="52" y="44" fill="{{.Palette.TextPrimary}}" font-size="20" ` + font + ` font-weight="700">TechStartups</text>
    <path d="M 252 15 L 246 25 L 258 25 Z" fill="{{.Palette.TextSecondary}}"/>
    <text id="subscriber-count" x="252" y="44" fill="{{.Palette.TextPrimary}}" font-size="20" ` + font + ` font-weight="700" text-anchor="middle">{{.Subscribers}}</text>
  </a>
</svg>`))
