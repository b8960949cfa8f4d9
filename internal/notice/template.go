package notice

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// ErrInvalidParams is returned when a template value fails boundary checks.
var ErrInvalidParams = errors.New("invalid notice parameters")

// DateLayout renders the validity date as dd.MM.yyyy.
const DateLayout = "02.01.2006"

// bodyTemplate is the mail body consumed by downstream mail rules. Its bytes,
// CRLF line breaks included, and the order of the four arguments (partner,
// INN, KPP, validity) must not change.
var bodyTemplate = strings.Join([]string{
	" ",
	"        <html>",
	"        <body>",
	"        <tr>",
	"                <td> <span><br/>Уведомляем вас, что срок согласования контрагента подходит к концу:</span> </td>",
	"            </tr>",
	"         <tr>",
	"                <td> <span><br/>Наименование контрагента: %[1]s</span> </td>",
	"            </tr>",
	"        <tr>",
	"                <td> <span><br/>ИНН: %[2]s</span> </td>",
	"            </tr>",
	"        <tr>",
	"                <td> <span><br/>КПП: %[3]s</span> </td>",
	"            </tr>",
	"        <tr>",
	"                <td> <span><br/>Срок согласования: %[4]s</span> </td>",
	"            </tr>",
	"        </body>",
	"        </html>",
	"        ",
}, "\r\n")

// Message keys of the notice catalog.
const (
	keyNotSpecified  = "not specified"
	keySubjectPrefix = "partner approval ending: %s"
)

// Params are the template substitutions for one partner.
type Params struct {
	Partner  string
	INN      *string
	KPP      *string
	Validity time.Time
}

// Renderer formats notice subjects and bodies for one locale.
type Renderer struct {
	printer *message.Printer
}

// NewRenderer returns a renderer for tag. Unsupported tags fall back to Russian.
func NewRenderer(tag language.Tag) *Renderer {
	return &Renderer{printer: message.NewPrinter(tag, message.Catalog(noticeCatalog))}
}

var noticeCatalog = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Russian))
	must(b.SetString(language.Russian, keyNotSpecified, "не указан"))
	must(b.SetString(language.Russian, keySubjectPrefix, "Окончание срока согласования контрагента %s"))
	must(b.SetString(language.English, keyNotSpecified, "not specified"))
	must(b.SetString(language.English, keySubjectPrefix, "Partner approval period ending %s"))
	return b
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// NotSpecified is the fallback shown for an absent identifier.
func (r *Renderer) NotSpecified() string {
	return r.printer.Sprintf(keyNotSpecified)
}

// Subject builds the mail subject for a partner.
func (r *Renderer) Subject(partner string) string {
	return r.printer.Sprintf(keySubjectPrefix, strings.TrimSpace(partner))
}

// Body renders the fixed HTML template. Values are checked and HTML-escaped
// before substitution; absent identifiers render as the fallback text.
func (r *Renderer) Body(p Params) (string, error) {
	partner := strings.TrimSpace(p.Partner)
	if partner == "" {
		return "", fmt.Errorf("partner name is required: %w", ErrInvalidParams)
	}
	if p.Validity.IsZero() {
		return "", fmt.Errorf("validity date is required: %w", ErrInvalidParams)
	}
	inn, err := r.identifier("INN", p.INN)
	if err != nil {
		return "", err
	}
	kpp, err := r.identifier("KPP", p.KPP)
	if err != nil {
		return "", err
	}
	if hasControl(partner) {
		return "", fmt.Errorf("partner name contains control characters: %w", ErrInvalidParams)
	}
	return fmt.Sprintf(bodyTemplate,
		html.EscapeString(partner),
		html.EscapeString(inn),
		html.EscapeString(kpp),
		p.Validity.Format(DateLayout),
	), nil
}

func (r *Renderer) identifier(name string, v *string) (string, error) {
	if v == nil {
		return r.NotSpecified(), nil
	}
	if hasControl(*v) {
		return "", fmt.Errorf("%s contains control characters: %w", name, ErrInvalidParams)
	}
	return *v, nil
}

func hasControl(s string) bool {
	return strings.ContainsFunc(s, unicode.IsControl)
}
