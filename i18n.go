package titlefill

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// TextDomain scopes every user-facing string of the title filler.
const TextDomain = "tb_etf"

const (
	msgSetTitleFormat    = "(Set a Title Format)"
	msgCustomTitleFormat = "Custom Title Format"
	msgCodesIntro        = "you may use these codes:"
	msgCodeDate          = "date"
	msgCodeFormat        = "format (if any)"
	msgCodeID            = "id"
	msgCodeCategory      = "first category"
	msgTagsAllowed       = "HTML tags allowed:"
	msgNotEmptyTitles    = "Use the format even for not-empty titles. (highly not recommended)"
	msgOptionsHeading    = "Empty Titles Filler Options"
	msgMenuLabel         = "TB Empty Titles Filler"
	msgSaveChanges       = "Save Changes"
	msgSettingsSaved     = "Settings saved."
)

var domains = map[string]*catalog.Builder{
	TextDomain: mustCatalog(newTitleFillCatalog()),
}

// italian holds the Italian strings of the tb_etf domain.
var italian = map[string]string{
	msgSetTitleFormat:    "(Imposta un formato per il titolo)",
	msgCustomTitleFormat: "Formato titolo personalizzato",
	msgCodesIntro:        "puoi usare questi codici:",
	msgCodeDate:          "data",
	msgCodeFormat:        "formato (se presente)",
	msgCodeID:            "id",
	msgCodeCategory:      "prima categoria",
	msgTagsAllowed:       "Tag HTML consentiti:",
	msgNotEmptyTitles:    "Usa il formato anche per i titoli non vuoti. (sconsigliato)",
	msgOptionsHeading:    "Opzioni di Empty Titles Filler",
	msgSaveChanges:       "Salva le modifiche",
	msgSettingsSaved:     "Impostazioni salvate.",
	"Aside":              "Digressione",
	"Gallery":            "Galleria",
	"Link":               "Link",
	"Image":              "Immagine",
	"Quote":              "Citazione",
	"Status":             "Stato",
	"Video":              "Video",
	"Audio":              "Audio",
	"Chat":               "Chat",
	"Post":               "Articolo",
	"Page":               "Pagina",
}

func newTitleFillCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range italian {
		if err := b.SetString(language.Italian, key, msg); err != nil {
			return nil, fmt.Errorf("catalog %s: %q: %w", TextDomain, key, err)
		}
	}
	return b, nil
}

func mustCatalog(b *catalog.Builder, err error) *catalog.Builder {
	if err != nil {
		panic(err)
	}
	return b
}

// Translator looks up strings in one text domain for one locale. Strings
// without a translation come back unchanged.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// NewTranslator returns a Translator for locale within domain. Unknown
// domains and unparsable locales fall back to untranslated English.
func NewTranslator(domain, locale string) *Translator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	opts := []message.Option{}
	if b, ok := domains[domain]; ok {
		opts = append(opts, message.Catalog(b))
	}
	return &Translator{tag: tag, printer: message.NewPrinter(tag, opts...)}
}

// T translates msg.
func (t *Translator) T(msg string) string {
	if t == nil {
		return msg
	}
	return t.printer.Sprintf(msg)
}

// Lang returns the BCP 47 tag of the translator's locale.
func (t *Translator) Lang() string {
	if t == nil {
		return language.English.String()
	}
	return t.tag.String()
}
