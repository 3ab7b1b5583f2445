package workbook

import "time"

const (
	// DefaultSheetName is the sheet the importer prefers and the exporter writes.
	DefaultSheetName = "Sample Metadata"
	// DefaultTitle is written to the merged title cell.
	DefaultTitle = "Sample Metadata Submission"
	// DefaultSamplePrefix prefixes generated sample ids.
	DefaultSamplePrefix = "SAMPLE"

	titleCell         = "A1"
	generatedLabel    = "A5"
	generatedCell     = "B5"
	headerRow         = 10
	fallbackHeaderRow = 11
	minColumnWidth    = 12.0
	labelColumnWidth  = 22.0
	minTitleColumns   = 9
	expectedIDSample  = 5
)

// projectCell binds a fixed value address to a project field.
type projectCell struct {
	value string
	field string
	label string
	// labelCell holds the caption written next to the value.
	labelCell string
	// mergeEnd, when set, merges value..mergeEnd.
	mergeEnd string
}

// contactBlock is a titled, merged header over three contact rows.
type contactBlock struct {
	title      string
	titleStart string
	titleEnd   string
}

var projectLayout = []projectCell{
	{value: "B3", field: "project_name", label: "Project Name", labelCell: "A3", mergeEnd: "D3"},
	{value: "F3", field: "project_uuid", label: "Project UUID", labelCell: "E3", mergeEnd: "H3"},
	{value: "B4", field: "project_description", label: "Description", labelCell: "A4", mergeEnd: "H4"},

	{value: "B7", field: "primary_contact_name", label: "Name", labelCell: "A7", mergeEnd: "C7"},
	{value: "B8", field: "primary_contact_email", label: "Email", labelCell: "A8", mergeEnd: "C8"},
	{value: "B9", field: "primary_contact_institution", label: "Institution", labelCell: "A9", mergeEnd: "C9"},

	{value: "E7", field: "secondary_contact_name", label: "Name", labelCell: "D7", mergeEnd: "F7"},
	{value: "E8", field: "secondary_contact_email", label: "Email", labelCell: "D8", mergeEnd: "F8"},
	{value: "E9", field: "secondary_contact_institution", label: "Institution", labelCell: "D9", mergeEnd: "F9"},

	{value: "H7", field: "sequencing_contact_name", label: "Name", labelCell: "G7", mergeEnd: "I7"},
	{value: "H8", field: "sequencing_contact_email", label: "Email", labelCell: "G8", mergeEnd: "I8"},
	{value: "H9", field: "sequencing_contact_institution", label: "Institution", labelCell: "G9", mergeEnd: "I9"},
}

var contactBlocks = []contactBlock{
	{title: "Primary Contact", titleStart: "A6", titleEnd: "C6"},
	{title: "Secondary Contact", titleStart: "D6", titleEnd: "F6"},
	{title: "Sequencing Contact", titleStart: "G6", titleEnd: "I6"},
}

// ProjectCells returns the fixed cell address of every project field the
// layout carries, keyed by field id.
func ProjectCells() map[string]string {
	out := make(map[string]string, len(projectLayout))
	for _, cell := range projectLayout {
		out[cell.field] = cell.value
	}
	return out
}

// Option configures importers and exporters.
type Option func(*config)

type config struct {
	sheetName    string
	title        string
	samplePrefix string
	clock        func() time.Time
}

func defaultConfig() config {
	return config{
		sheetName:    DefaultSheetName,
		title:        DefaultTitle,
		samplePrefix: DefaultSamplePrefix,
		clock:        time.Now,
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithSheetName overrides the preferred/written sheet name.
func WithSheetName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.sheetName = name
		}
	}
}

// WithTitle overrides the exported title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title != "" {
			cfg.title = title
		}
	}
}

// WithSamplePrefix overrides the prefix of generated sample ids.
func WithSamplePrefix(prefix string) Option {
	return func(cfg *config) {
		if prefix != "" {
			cfg.samplePrefix = prefix
		}
	}
}

// WithClock overrides the generation timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(cfg *config) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}
