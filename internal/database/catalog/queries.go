package catalog

import (
	"database/sql"
	"fmt"

	"github.com/mrlokans/biblioteca/internal/entities"
)

// Every specialization table is left-joined; at most one of them matches.
const catalogFrom = `
FROM material_bibliografico mb
LEFT JOIN livro l ON l.id = mb.id
LEFT JOIN apostila a ON a.id = mb.id
LEFT JOIN ebook e ON e.id = mb.id
LEFT JOIN revista rv ON rv.id = mb.id`

const catalogColumns = `
SELECT mb.id, mb.usuario_id, mb.autor, mb.titulo, mb.ano, mb.categoria,
	l.genero AS livro_genero, l.movimento AS livro_movimento, l.editora AS livro_editora,
	a.turma AS apostila_turma, a.disciplina AS apostila_disciplina,
	e.genero AS ebook_genero, e.movimento AS ebook_movimento, e.url AS ebook_url,
	rv.editora AS revista_editora,
	(SELECT ROUND(AVG(av.nota), 2) FROM avaliacao av WHERE av.material_id = mb.id) AS media_avaliacao`

// statusExpr derives the status of mb. An open loan wins over a pending
// reservation.
var statusExpr = fmt.Sprintf(`CASE
	WHEN EXISTS (SELECT 1 FROM emprestimo em WHERE em.material_id = mb.id AND em.data_devolucao_real IS NULL) THEN '%s'
	WHEN EXISTS (SELECT 1 FROM reserva rs WHERE rs.material_id = mb.id AND rs.status_reserva = '%s') THEN '%s'
	ELSE '%s'
END`,
	entities.StatusLoaned,
	entities.ReservationPending, entities.StatusReserved,
	entities.StatusAvailable,
)

func catalogQuery(withStatus bool) string {
	if withStatus {
		return catalogColumns + ",\n\t" + statusExpr + " AS status" + catalogFrom
	}
	return catalogColumns + catalogFrom
}

type catalogRow struct {
	ID       uint                  `gorm:"column:id"`
	OwnerID  *uint                 `gorm:"column:usuario_id"`
	Author   string                `gorm:"column:autor"`
	Title    string                `gorm:"column:titulo"`
	Year     *int                  `gorm:"column:ano"`
	Category entities.MaterialKind `gorm:"column:categoria"`

	BookGenre         sql.NullString `gorm:"column:livro_genero"`
	BookMovement      sql.NullString `gorm:"column:livro_movimento"`
	BookPublisher     sql.NullString `gorm:"column:livro_editora"`
	HandoutClass      sql.NullString `gorm:"column:apostila_turma"`
	HandoutSubject    sql.NullString `gorm:"column:apostila_disciplina"`
	EbookGenre        sql.NullString `gorm:"column:ebook_genero"`
	EbookMovement     sql.NullString `gorm:"column:ebook_movimento"`
	EbookURL          sql.NullString `gorm:"column:ebook_url"`
	MagazinePublisher sql.NullString `gorm:"column:revista_editora"`
	AverageRating     *float64       `gorm:"column:media_avaliacao"`
	Status            string         `gorm:"column:status"`
}

func (row catalogRow) entry() entities.CatalogEntry {
	return entities.CatalogEntry{
		ID:            row.ID,
		OwnerID:       row.OwnerID,
		Author:        row.Author,
		Title:         row.Title,
		Year:          row.Year,
		Kind:          row.Category,
		Details:       row.details(),
		AverageRating: row.AverageRating,
		Status:        entities.MaterialStatus(row.Status),
	}
}

func (row catalogRow) details() entities.MaterialDetails {
	switch row.Category {
	case entities.KindBook:
		return entities.BookDetails{
			Genre:     row.BookGenre.String,
			Movement:  row.BookMovement.String,
			Publisher: row.BookPublisher.String,
		}
	case entities.KindHandout:
		return entities.HandoutDetails{
			Class:   row.HandoutClass.String,
			Subject: row.HandoutSubject.String,
		}
	case entities.KindEbook:
		return entities.EbookDetails{
			Genre:    row.EbookGenre.String,
			Movement: row.EbookMovement.String,
			URL:      row.EbookURL.String,
		}
	case entities.KindMagazine:
		return entities.MagazineDetails{Publisher: row.MagazinePublisher.String}
	case entities.KindThesis:
		return entities.ThesisDetails{}
	case entities.KindReviewArtifact:
		return entities.ReviewArtifactDetails{}
	default:
		return nil
	}
}

// specializationValues maps details to the columns of its table.
// Empty strings are stored as NULL.
func specializationValues(id uint, details entities.MaterialDetails) (map[string]interface{}, error) {
	values := map[string]interface{}{"id": id}
	switch d := details.(type) {
	case entities.BookDetails:
		values["genero"] = nullable(d.Genre)
		values["movimento"] = nullable(d.Movement)
		values["editora"] = nullable(d.Publisher)
	case entities.HandoutDetails:
		values["turma"] = nullable(d.Class)
		values["disciplina"] = nullable(d.Subject)
	case entities.EbookDetails:
		values["genero"] = nullable(d.Genre)
		values["movimento"] = nullable(d.Movement)
		values["url"] = nullable(d.URL)
	case entities.MagazineDetails:
		values["editora"] = nullable(d.Publisher)
	case entities.ThesisDetails, entities.ReviewArtifactDetails:
	default:
		return nil, entities.ErrInvalidMaterialKind
	}
	return values, nil
}

// concreteDetails returns details as one of the value variants. Pointer
// variants are dereferenced; nil and unknown types are rejected.
func concreteDetails(details entities.MaterialDetails) (entities.MaterialDetails, error) {
	switch d := details.(type) {
	case entities.BookDetails, entities.HandoutDetails, entities.EbookDetails,
		entities.MagazineDetails, entities.ThesisDetails, entities.ReviewArtifactDetails:
		return details, nil
	case *entities.BookDetails:
		if d != nil {
			return *d, nil
		}
	case *entities.HandoutDetails:
		if d != nil {
			return *d, nil
		}
	case *entities.EbookDetails:
		if d != nil {
			return *d, nil
		}
	case *entities.MagazineDetails:
		if d != nil {
			return *d, nil
		}
	case *entities.ThesisDetails:
		if d != nil {
			return *d, nil
		}
	case *entities.ReviewArtifactDetails:
		if d != nil {
			return *d, nil
		}
	}
	return nil, entities.ErrInvalidMaterialKind
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

type statusRow struct {
	ID       uint                  `gorm:"column:id"`
	Author   string                `gorm:"column:autor"`
	Title    string                `gorm:"column:titulo"`
	Year     *int                  `gorm:"column:ano"`
	Category entities.MaterialKind `gorm:"column:categoria"`
	Status   string                `gorm:"column:status"`
}
