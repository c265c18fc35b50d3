package entities

// MaterialKind is the category tag stored in material_bibliografico.categoria.
type MaterialKind string

const (
	KindBook           MaterialKind = "livro"
	KindHandout        MaterialKind = "apostila"
	KindEbook          MaterialKind = "ebook"
	KindMagazine       MaterialKind = "revista"
	KindThesis         MaterialKind = "trabalho"
	KindReviewArtifact MaterialKind = "resenha"
)

// MaterialKinds lists every kind in a stable order.
var MaterialKinds = []MaterialKind{
	KindBook,
	KindHandout,
	KindEbook,
	KindMagazine,
	KindThesis,
	KindReviewArtifact,
}

var kindTables = map[MaterialKind]string{
	KindBook:           "livro",
	KindHandout:        "apostila",
	KindEbook:          "ebook",
	KindMagazine:       "revista",
	KindThesis:         "trabalho",
	KindReviewArtifact: "resenha_material",
}

// Valid reports whether k is one of the known kinds.
func (k MaterialKind) Valid() bool {
	_, ok := kindTables[k]
	return ok
}

// Table returns the specialization table holding the kind's extra columns.
func (k MaterialKind) Table() string {
	return kindTables[k]
}

// MaterialDetails is the closed set of specializations a material can carry.
// Only the types in this package implement it.
type MaterialDetails interface {
	Kind() MaterialKind
	materialDetails()
}

type BookDetails struct {
	Genre     string `json:"genre,omitempty"`
	Movement  string `json:"movement,omitempty"`
	Publisher string `json:"publisher,omitempty"`
}

type HandoutDetails struct {
	Class   string `json:"class,omitempty"`
	Subject string `json:"subject,omitempty"`
}

type EbookDetails struct {
	Genre    string `json:"genre,omitempty"`
	Movement string `json:"movement,omitempty"`
	URL      string `json:"url,omitempty"`
}

type MagazineDetails struct {
	Publisher string `json:"publisher,omitempty"`
}

type ThesisDetails struct{}

type ReviewArtifactDetails struct{}

func (BookDetails) Kind() MaterialKind           { return KindBook }
func (HandoutDetails) Kind() MaterialKind        { return KindHandout }
func (EbookDetails) Kind() MaterialKind          { return KindEbook }
func (MagazineDetails) Kind() MaterialKind       { return KindMagazine }
func (ThesisDetails) Kind() MaterialKind         { return KindThesis }
func (ReviewArtifactDetails) Kind() MaterialKind { return KindReviewArtifact }

func (BookDetails) materialDetails()           {}
func (HandoutDetails) materialDetails()        {}
func (EbookDetails) materialDetails()          {}
func (MagazineDetails) materialDetails()       {}
func (ThesisDetails) materialDetails()         {}
func (ReviewArtifactDetails) materialDetails() {}

// Material is a bibliographic material to be catalogued.
type Material struct {
	OwnerID *uint           `json:"owner_id,omitempty"`
	Author  string          `json:"author" validate:"required"`
	Title   string          `json:"title" validate:"required"`
	Year    *int            `json:"year,omitempty"`
	Details MaterialDetails `json:"details"`
}

// Kind returns the kind of the attached details, or "" when none are set.
func (m Material) Kind() MaterialKind {
	if m.Details == nil {
		return ""
	}
	return m.Details.Kind()
}

// MaterialRecord maps the supertype row.
type MaterialRecord struct {
	ID       uint         `gorm:"column:id;primaryKey"`
	OwnerID  *uint        `gorm:"column:usuario_id"`
	Author   string       `gorm:"column:autor"`
	Title    string       `gorm:"column:titulo"`
	Year     *int         `gorm:"column:ano"`
	Category MaterialKind `gorm:"column:categoria"`
}

func (MaterialRecord) TableName() string { return "material_bibliografico" }

// MaterialStatus is derived from open loans and pending reservations.
type MaterialStatus string

const (
	StatusLoaned    MaterialStatus = "Emprestado"
	StatusReserved  MaterialStatus = "Reservado"
	StatusAvailable MaterialStatus = "Disponível"
)

// CatalogEntry is a material with its specialization and average rating.
// Status is only filled by the status-aware listings.
type CatalogEntry struct {
	ID            uint            `json:"id"`
	OwnerID       *uint           `json:"owner_id,omitempty"`
	Author        string          `json:"author"`
	Title         string          `json:"title"`
	Year          *int            `json:"year,omitempty"`
	Kind          MaterialKind    `json:"category"`
	Details       MaterialDetails `json:"details,omitempty"`
	AverageRating *float64        `json:"average_rating"`
	Status        MaterialStatus  `json:"status,omitempty"`
}

// MaterialSummary is the minimal projection returned by title search.
type MaterialSummary struct {
	ID     uint           `gorm:"column:id" json:"id"`
	Author string         `gorm:"column:autor" json:"author"`
	Title  string         `gorm:"column:titulo" json:"title"`
	Year   *int           `gorm:"column:ano" json:"year,omitempty"`
	Kind   MaterialKind   `gorm:"column:categoria" json:"category"`
	Status MaterialStatus `gorm:"-" json:"status,omitempty"`
}
