// Package i18n holds the user-facing strings of the preview views.
package i18n

import (
	"datapreview/domain/preview"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a translatable string
type Key string

const (
	Loading     Key = "loading"
	LoadFailed  Key = "load_failed"
	StatsTitle  Key = "stats_title"
	Mean        Key = "mean"
	Median      Key = "median"
	StdDev      Key = "std_dev"
	Min         Key = "min"
	Max         Key = "max"
	Missing     Key = "missing"
	ChartTitle  Key = "chart_title"
	Column      Key = "column"
	FilesTitle  Key = "files_title"
	NoFiles     Key = "no_files"
	Preview     Key = "preview"
	Export      Key = "export"
	Statistics  Key = "statistics"
	Close       Key = "close"
	Rows        Key = "rows"
	Columns     Key = "columns"
	UploadedAt  Key = "uploaded_at"
	DataSheet   Key = "data_sheet"
	StatsSheet  Key = "stats_sheet"
	FileHeading Key = "file_heading"
	NoStats     Key = "no_stats"
)

var supported = []language.Tag{language.French, language.English}

var translations = map[language.Tag]map[Key]string{
	language.French: {
		Loading:     "Chargement...",
		LoadFailed:  "Erreur lors du chargement des données",
		StatsTitle:  "Statistiques descriptives",
		Mean:        "Moyenne",
		Median:      "Médiane",
		StdDev:      "Écart-type",
		Min:         "Min",
		Max:         "Max",
		Missing:     "Valeurs manquantes",
		ChartTitle:  "Statistiques descriptives",
		Column:      "Colonne",
		FilesTitle:  "Mes fichiers",
		NoFiles:     "Aucun fichier importé.",
		Preview:     "Aperçu",
		Export:      "Exporter",
		Statistics:  "Statistiques",
		Close:       "Fermer",
		Rows:        "Lignes",
		Columns:     "Colonnes",
		UploadedAt:  "Importé le",
		DataSheet:   "Données",
		StatsSheet:  "Statistiques",
		FileHeading: "Fichier",
		NoStats:     "Aucune statistique disponible pour ce fichier.",
	},
	language.English: {
		Loading:     "Loading...",
		LoadFailed:  "Error while loading the data",
		StatsTitle:  "Descriptive statistics",
		Mean:        "Mean",
		Median:      "Median",
		StdDev:      "Std. deviation",
		Min:         "Min",
		Max:         "Max",
		Missing:     "Missing values",
		ChartTitle:  "Descriptive statistics",
		Column:      "Column",
		FilesTitle:  "My files",
		NoFiles:     "No file uploaded yet.",
		Preview:     "Preview",
		Export:      "Export",
		Statistics:  "Statistics",
		Close:       "Close",
		Rows:        "Rows",
		Columns:     "Columns",
		UploadedAt:  "Uploaded on",
		DataSheet:   "Data",
		StatsSheet:  "Statistics",
		FileHeading: "File",
		NoStats:     "No statistics available for this file.",
	},
}

var (
	messages = buildCatalog()
	matcher  = language.NewMatcher(supported)
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.French))
	for tag, entries := range translations {
		for key, text := range entries {
			if err := b.SetString(tag, string(key), text); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Localizer resolves keys for one language
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a localizer for the closest supported language; French when nothing matches
func New(lang string) *Localizer {
	tag := language.French
	if parsed, err := language.Parse(lang); err == nil {
		_, idx, _ := matcher.Match(parsed)
		tag = supported[idx]
	}
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(messages)),
	}
}

// T returns the text for key
func (l *Localizer) T(key Key) string {
	return l.printer.Sprintf(string(key))
}

// Tag returns the resolved language
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// FieldLabel is the key of a stats field's label
func FieldLabel(f preview.Field) Key {
	switch f {
	case preview.FieldMean:
		return Mean
	case preview.FieldMedian:
		return Median
	case preview.FieldStdDev:
		return StdDev
	case preview.FieldMin:
		return Min
	case preview.FieldMax:
		return Max
	default:
		return Missing
	}
}
