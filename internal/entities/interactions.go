package entities

import "time"

type Friendship struct {
	ID      uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID1 uint      `gorm:"column:usuario_id1" json:"user_id1"`
	UserID2 uint      `gorm:"column:usuario_id2" json:"user_id2"`
	Since   time.Time `gorm:"column:data_amizade;->" json:"since"`
}

func (Friendship) TableName() string { return "amizade" }

// Loan is open while ReturnedAt is nil.
type Loan struct {
	ID               uint       `gorm:"column:id;primaryKey" json:"id"`
	UserID           uint       `gorm:"column:usuario_id" json:"user_id"`
	MaterialID       uint       `gorm:"column:material_id" json:"material_id"`
	LoanedAt         time.Time  `gorm:"column:data_emprestimo;->" json:"loaned_at"`
	ExpectedReturnAt time.Time  `gorm:"column:data_devolucao_prevista" json:"expected_return_at"`
	ReturnedAt       *time.Time `gorm:"column:data_devolucao_real" json:"returned_at,omitempty"`
}

func (Loan) TableName() string { return "emprestimo" }

// IsOpen reports whether the material has not been returned yet.
func (l Loan) IsOpen() bool { return l.ReturnedAt == nil }

// OpenLoan is the projection returned by the open-loan lookups.
type OpenLoan struct {
	ID     uint `gorm:"column:id" json:"id"`
	UserID uint `gorm:"column:usuario_id" json:"user_id"`
}

// LoanWithTitle is a user's loan joined with the material title.
type LoanWithTitle struct {
	Loan
	Title string `gorm:"column:titulo" json:"title"`
}

// OverdueLoan is an open loan past its expected return.
type OverdueLoan struct {
	Loan
	Title     string `gorm:"column:titulo" json:"title"`
	UserName  string `gorm:"column:nome" json:"user_name"`
	UserEmail string `gorm:"column:email" json:"user_email"`
}

type ReservationStatus string

const (
	ReservationPending ReservationStatus = "pendente"
	ReservationExpired ReservationStatus = "expirada"
)

type Reservation struct {
	ID         uint              `gorm:"column:id;primaryKey" json:"id"`
	UserID     uint              `gorm:"column:usuario_id" json:"user_id"`
	MaterialID uint              `gorm:"column:material_id" json:"material_id"`
	Status     ReservationStatus `gorm:"column:status_reserva" json:"status"`
	ReservedAt time.Time         `gorm:"column:data_reserva;->" json:"reserved_at"`
}

func (Reservation) TableName() string { return "reserva" }

// ReservationWithTitle is a user's reservation joined with the material title.
type ReservationWithTitle struct {
	Reservation
	Title string `gorm:"column:titulo" json:"title"`
}

type Favourite struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID      uint      `gorm:"column:usuario_id" json:"user_id"`
	MaterialID  uint      `gorm:"column:material_id" json:"material_id"`
	FavouriteAt time.Time `gorm:"column:data_favorito;->" json:"favourite_at"`
}

func (Favourite) TableName() string { return "favorita" }

// FavouriteMaterial is a favourite joined with the material's base columns.
type FavouriteMaterial struct {
	MaterialID  uint         `gorm:"column:material_id" json:"material_id"`
	Title       string       `gorm:"column:titulo" json:"title"`
	Author      string       `gorm:"column:autor" json:"author"`
	Kind        MaterialKind `gorm:"column:categoria" json:"category"`
	FavouriteAt time.Time    `gorm:"column:data_favorito" json:"favourite_at"`
}

const (
	MinRating = 0.0
	MaxRating = 5.0
)

type Rating struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID     uint      `gorm:"column:usuario_id" json:"user_id"`
	MaterialID uint      `gorm:"column:material_id" json:"material_id"`
	Value      float64   `gorm:"column:nota" json:"value"`
	RatedAt    time.Time `gorm:"column:data_avaliacao;->" json:"rated_at"`
}

func (Rating) TableName() string { return "avaliacao" }

type Review struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID     uint      `gorm:"column:usuario_id" json:"user_id"`
	MaterialID uint      `gorm:"column:material_id" json:"material_id"`
	Text       string    `gorm:"column:texto_resenha" json:"text"`
	ReviewedAt time.Time `gorm:"column:data_resenha;->" json:"reviewed_at"`
}

func (Review) TableName() string { return "resenha" }

// MaterialReview is a review of one material with the reviewer's name.
type MaterialReview struct {
	Review
	UserName string `gorm:"column:nome" json:"user_name"`
}

// UserReview is a review written by one user with the material title.
type UserReview struct {
	Review
	Title string `gorm:"column:titulo" json:"title"`
}

type EbookAccess struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID     uint      `gorm:"column:usuario_id" json:"user_id"`
	EbookID    uint      `gorm:"column:ebook_id" json:"ebook_id"`
	AccessedAt time.Time `gorm:"column:data_acesso;->" json:"accessed_at"`
	// Duration is in minutes, nil when not recorded.
	Duration *int `gorm:"column:duracao_acesso" json:"duration,omitempty"`
}

func (EbookAccess) TableName() string { return "acesso_ebook" }

// EbookAccessWithTitle is an access log entry joined with the e-book title.
type EbookAccessWithTitle struct {
	EbookAccess
	Title string `gorm:"column:titulo" json:"title"`
}
